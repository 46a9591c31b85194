package model

const (
	// AuthFlowOwn sends directly to the Google Ads API with a bearer
	// credential. AuthFlowStape routes through the stape auth proxy
	// without one.
	AuthFlowOwn   = "own"
	AuthFlowStape = "stape"

	AdjustmentTypeUnspecified       = "UNSPECIFIED"
	UserIdentifierSourceUnspecified = "UNSPECIFIED"

	ConsentRequired = "required"
)

// UserDataEntry is one explicitly configured user identifier. Entries are
// ordered and always precede identifiers derived from event data.
type UserDataEntry struct {
	Name                 string      `json:"name"`
	Value                interface{} `json:"value"`
	UserIdentifierSource string      `json:"userIdentifierSource"`
}

// TagConfig is the static configuration of one tag instance. It is immutable
// for the lifetime of one invocation.
type TagConfig struct {
	CustomerId               string          `json:"customer_id"`
	OpCustomerId             string          `json:"op_customer_id"`
	ConversionAction         string          `json:"conversion_action"`
	ConversionActionId       interface{}     `json:"conversion_action_id"`
	ConversionAdjustmentType string          `json:"conversion_adjustment_type"`
	Gclid                    string          `json:"gclid"`
	ConversionDateTime       string          `json:"conversion_date_time"`
	ConversionValue          interface{}     `json:"conversion_value"`
	CurrencyCode             string          `json:"currency_code"`
	OrderId                  interface{}     `json:"order_id"`
	AdjustmentDateTime       string          `json:"adjustment_date_time"`
	UserAgent                interface{}     `json:"user_agent"`
	UserDataList             []UserDataEntry `json:"user_data_list"`

	AuthFlow       string `json:"auth_flow"`
	DeveloperToken string `json:"developer_token"`
	DebugEnabled   bool   `json:"debug_enabled"`

	// Tri-state log policies per sink: "no" | "always" | "debug".
	// Empty follows the container debug flag.
	LogType         string `json:"log_type"`
	BigQueryLogType string `json:"bq_log_type"`
	KafkaLogType    string `json:"kafka_log_type"`

	// "required" gates the upload on an ad_storage consent signal.
	AdStorageConsent string `json:"ad_storage_consent"`
}

type GclidDateTimePair struct {
	Gclid              string `json:"gclid"`
	ConversionDateTime string `json:"conversionDateTime"`
}

type RestatementValue struct {
	AdjustedValue float64 `json:"adjustedValue"`
	CurrencyCode  string  `json:"currencyCode"`
}

// UserIdentifier is a single-key identifier object, e.g.
// {"hashedEmail": "<digest>", "userIdentifierSource": "UNSPECIFIED"}.
// The identifier key is dynamic, hence the map rendering.
type UserIdentifier map[string]interface{}

type ConversionAdjustment struct {
	ConversionAction   string             `json:"conversionAction"`
	AdjustmentType     string             `json:"adjustmentType"`
	GclidDateTimePair  *GclidDateTimePair `json:"gclidDateTimePair,omitempty"`
	RestatementValue   *RestatementValue  `json:"restatementValue,omitempty"`
	OrderId            string             `json:"orderId,omitempty"`
	AdjustmentDateTime string             `json:"adjustmentDateTime,omitempty"`
	UserAgent          string             `json:"userAgent,omitempty"`
	UserIdentifiers    []UserIdentifier   `json:"userIdentifiers,omitempty"`
}

// AdjustmentRequest is the upload envelope. Exactly one adjustment per
// invocation, partial failure semantics are always requested so the API
// validates individual fields server side.
type AdjustmentRequest struct {
	ConversionAdjustments []ConversionAdjustment `json:"conversionAdjustments"`
	PartialFailure        bool                   `json:"partialFailure"`
	ValidateOnly          bool                   `json:"validateOnly,omitempty"`
}
