package sensor

import (
	"fmt"

	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// RecordTo registers callbacks on s that translate engine events into
// SessionRecords and hand them to emit. Only strum records carry a
// timestamp; emit is expected to stamp the rest.
func RecordTo(s types.Sensor, emit func(types.SessionRecord)) {
	s.RegisterOnStrum(func(_ types.ComponentMetadata, ev types.StrumEvent) {
		emit(types.SessionRecord{Timestamp: ev.At.UnixNano(), Event: types.EventStrum, ToneID: int32(ev.ToneID), Magnitude: int32(ev.Magnitude)})
	})
	s.RegisterOnToneSwitch(func(_ types.ComponentMetadata, from int, to int) {
		emit(types.SessionRecord{Event: types.EventToneSwitch, ToneID: int32(to), Detail: fmt.Sprintf("from=%d", from)})
	})
	s.RegisterOnPlaybackStart(func(_ types.ComponentMetadata, t types.Tone) {
		emit(types.SessionRecord{Event: types.EventPlaybackStart, ToneID: int32(t.ID), Count: int64(t.FrameCount()), Detail: t.Ref})
	})
	s.RegisterOnPlaybackComplete(func(_ types.ComponentMetadata, t types.Tone) {
		emit(types.SessionRecord{Event: types.EventPlaybackComplete, ToneID: int32(t.ID), Count: int64(t.FrameCount()), Detail: t.Ref})
	})
	s.RegisterOnOverrun(func(_ types.ComponentMetadata, id int, dropped int) {
		emit(types.SessionRecord{Event: types.EventOverrun, ToneID: int32(id), Count: int64(dropped)})
	})
	s.RegisterOnUnderrun(func(_ types.ComponentMetadata, id int) {
		emit(types.SessionRecord{Event: types.EventUnderrun, ToneID: int32(id), Count: 1})
	})
	s.RegisterOnStorageError(func(_ types.ComponentMetadata, id int, err error) {
		emit(types.SessionRecord{Event: types.EventStorageError, ToneID: int32(id), Detail: err.Error()})
	})
	s.RegisterOnCatalogReject(func(_ types.ComponentMetadata, ref string, err error) {
		emit(types.SessionRecord{Event: types.EventCatalogReject, ToneID: int32(types.IdleTone), Detail: ref + ": " + err.Error()})
	})
}
