package types

// Session event names shared by the recorder and the kafka publisher.
const (
	EventStrum            = "strum"
	EventToneSwitch       = "tone_switch"
	EventPlaybackStart    = "playback_start"
	EventPlaybackComplete = "playback_complete"
	EventOverrun          = "overrun"
	EventUnderrun         = "underrun"
	EventStorageError     = "storage_error"
	EventCatalogReject    = "catalog_reject"
)

// SessionRecord is one row of a recorded playing session.
type SessionRecord struct {
	Timestamp int64  `parquet:"timestamp" json:"timestamp"`
	Event     string `parquet:"event" json:"event"`
	ToneID    int32  `parquet:"tone_id" json:"tone_id"`
	Magnitude int32  `parquet:"magnitude" json:"magnitude"`
	Count     int64  `parquet:"count" json:"count"`
	Detail    string `parquet:"detail" json:"detail,omitempty"`
}
