package taglog

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/bigquery"
	log "github.com/sirupsen/logrus"
)

// Column names of the tag log table.
var bigQueryFieldNames = map[string]string{
	"Name":               "tag_name",
	"Type":               "type",
	"TraceId":            "trace_id",
	"EventName":          "event_name",
	"RequestMethod":      "request_method",
	"RequestUrl":         "request_url",
	"RequestBody":        "request_body",
	"ResponseStatusCode": "response_status_code",
	"ResponseHeaders":    "response_headers",
	"ResponseBody":       "response_body",
}

// TableTransform renames the record keys to the tabular column set,
// stringifies nested values and attaches the capture timestamp.
func TableTransform(record Record) Record {
	row := make(Record, len(record)+1)
	for key, value := range record {
		column, exists := bigQueryFieldNames[key]
		if !exists {
			continue
		}

		switch value.(type) {
		case nil:
		case string, bool, int, int32, int64, float32, float64:
			row[column] = value
		default:
			stringified, err := json.Marshal(value)
			if err != nil {
				log.WithError(err).WithField("column", column).
					Error("Failed to stringify tag log value for bigquery.")
				continue
			}
			row[column] = string(stringified)
		}
	}
	row["timestamp"] = time.Now().UnixMilli()
	return row
}

type bigQueryRow Record

func (r bigQueryRow) Save() (map[string]bigquery.Value, string, error) {
	row := make(map[string]bigquery.Value, len(r))
	for column, value := range r {
		row[column] = value
	}
	return row, "", nil
}

type BigQuerySink struct {
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewBigQuerySink(client *bigquery.Client, dataset, table string) *BigQuerySink {
	return &BigQuerySink{
		inserter: client.Dataset(dataset).Table(table).Inserter(),
		dataset:  dataset,
		table:    table,
	}
}

// Write inserts the row fire-and-forget. Insert failures are logged and
// never surface to the tag outcome.
func (s *BigQuerySink) Write(record Record) {
	go func() {
		if err := s.inserter.Put(context.Background(), bigQueryRow(record)); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"dataset": s.dataset, "table": s.table,
			}).Error("Failed to insert tag log row to bigquery.")
		}
	}()
}
