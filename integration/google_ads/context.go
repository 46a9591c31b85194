package google_ads

import (
	"time"

	"gadstag/model/model"
	U "gadstag/util"
)

// TagContext carries everything one invocation needs: the tag
// configuration, the event data bag and the values resolved from ambient
// request context. Nothing here is process wide, each invocation builds
// its own.
type TagContext struct {
	Config model.TagConfig
	Event  U.PropertiesMap

	TraceId string

	// Routing values of the stape auth proxy flow, resolved from the
	// x-gtm-* request headers.
	ContainerIdentifier string
	DefaultDomain       string
	ContainerApiKey     string

	// Container debug/preview flag.
	Debug bool

	// NowMillis supplies the current unix millisecond timestamp.
	// Overridable for tests, defaults to the wall clock.
	NowMillis func() int64
}

func (tagCtx *TagContext) nowMillis() int64 {
	if tagCtx.NowMillis != nil {
		return tagCtx.NowMillis()
	}
	return time.Now().UnixMilli()
}

func (tagCtx *TagContext) eventValue(key string) interface{} {
	if tagCtx.Event == nil {
		return nil
	}
	return tagCtx.Event[key]
}

// IsConsentGrantedOrNotRequired gates the upload on the ad_storage
// consent signal when the tag is configured to require it. A granted
// consent_state entry or a gcs code with the ad_storage bit set passes.
func IsConsentGrantedOrNotRequired(tagCtx *TagContext) bool {
	if tagCtx.Config.AdStorageConsent != model.ConsentRequired {
		return true
	}

	if consentState, ok := tagCtx.eventValue("consent_state").(map[string]interface{}); ok {
		return U.IsTruthy(consentState["ad_storage"])
	}

	gcs := U.GetPropertyValueAsString(tagCtx.eventValue("x-ga-gcs"))
	return len(gcs) > 2 && gcs[2] == '1'
}
