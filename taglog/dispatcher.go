package taglog

import (
	"gadstag/model/model"
)

// Policy is the tri-state sink switch. The zero value follows the
// container debug flag.
type Policy string

const (
	PolicyNo     Policy = "no"
	PolicyAlways Policy = "always"
	PolicyDebug  Policy = "debug"
)

func (p Policy) Enabled(debug bool) bool {
	if p == "" {
		return debug
	}
	if p == PolicyNo {
		return false
	}
	if p == PolicyDebug {
		return debug
	}
	return p == PolicyAlways
}

// Options carries the per-invocation sink policies and the container
// debug flag.
type Options struct {
	Console  Policy
	BigQuery Policy
	Kafka    Policy
	Debug    bool
}

// Record is one log row keyed by LogEvent field names, or by sink column
// names after a transform ran.
type Record map[string]interface{}

type sinkBinding struct {
	name      string
	policy    func(Options) Policy
	transform func(Record) Record
	write     func(Record)
}

// Dispatcher fans a single log event out to the registered sinks. Each
// sink is evaluated independently, a disabled or failing sink never
// affects the others or the tag outcome.
type Dispatcher struct {
	sinks []sinkBinding
}

// AddSink registers a sink with its policy selector and record transform.
// Call sites of Dispatch stay untouched when sinks are added.
func (d *Dispatcher) AddSink(name string, policy func(Options) Policy,
	transform func(Record) Record, write func(Record)) {
	d.sinks = append(d.sinks, sinkBinding{
		name:      name,
		policy:    policy,
		transform: transform,
		write:     write,
	})
}

func (d *Dispatcher) Dispatch(event *model.LogEvent, options Options) {
	record := eventToRecord(event)
	for _, sink := range d.sinks {
		if !sink.policy(options).Enabled(options.Debug) {
			continue
		}
		sink.write(sink.transform(cloneRecord(record)))
	}
}

func eventToRecord(event *model.LogEvent) Record {
	record := Record{
		"Name":      event.Name,
		"Type":      event.Type,
		"TraceId":   event.TraceId,
		"EventName": event.EventName,
	}

	if event.Type == model.LogEventTypeRequest {
		record["RequestMethod"] = event.RequestMethod
		record["RequestUrl"] = event.RequestUrl
		record["RequestBody"] = event.RequestBody
		return record
	}

	record["ResponseStatusCode"] = event.ResponseStatusCode
	record["ResponseHeaders"] = event.ResponseHeaders
	record["ResponseBody"] = event.ResponseBody
	return record
}

func cloneRecord(record Record) Record {
	clone := make(Record, len(record))
	for key, value := range record {
		clone[key] = value
	}
	return clone
}

// IdentityTransform leaves the record keyed by LogEvent field names.
func IdentityTransform(record Record) Record {
	return record
}
