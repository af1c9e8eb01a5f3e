package sensor

import "github.com/joeydtaylor/strum/pkg/internal/types"

// ---------- Lifecycle ----------

func (s *Sensor) RegisterOnStart(callback ...func(types.ComponentMetadata)) {
	appendCallbacks(&s.callbackLock, &s.OnStart, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnStart callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnStart", "count", len(callback))
}

func (s *Sensor) InvokeOnStart(c types.ComponentMetadata) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStart) {
		cb(c)
	}
}

func (s *Sensor) RegisterOnStop(callback ...func(types.ComponentMetadata)) {
	appendCallbacks(&s.callbackLock, &s.OnStop, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnStop callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnStop", "count", len(callback))
}

func (s *Sensor) InvokeOnStop(c types.ComponentMetadata) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStop) {
		cb(c)
	}
}

// ---------- Detection ----------

func (s *Sensor) RegisterOnStrum(callback ...func(types.ComponentMetadata, types.StrumEvent)) {
	appendCallbacks(&s.callbackLock, &s.OnStrum, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnStrum callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnStrum", "count", len(callback))
}

func (s *Sensor) InvokeOnStrum(c types.ComponentMetadata, ev types.StrumEvent) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStrum) {
		cb(c, ev)
	}
}

// ---------- Playback ----------

func (s *Sensor) RegisterOnToneSwitch(callback ...func(types.ComponentMetadata, int, int)) {
	appendCallbacks(&s.callbackLock, &s.OnToneSwitch, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnToneSwitch callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnToneSwitch", "count", len(callback))
}

func (s *Sensor) InvokeOnToneSwitch(c types.ComponentMetadata, from int, to int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnToneSwitch) {
		cb(c, from, to)
	}
}

func (s *Sensor) RegisterOnPlaybackStart(callback ...func(types.ComponentMetadata, types.Tone)) {
	appendCallbacks(&s.callbackLock, &s.OnPlaybackStart, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnPlaybackStart callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnPlaybackStart", "count", len(callback))
}

func (s *Sensor) InvokeOnPlaybackStart(c types.ComponentMetadata, tone types.Tone) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnPlaybackStart) {
		cb(c, tone)
	}
}

func (s *Sensor) RegisterOnPlaybackComplete(callback ...func(types.ComponentMetadata, types.Tone)) {
	appendCallbacks(&s.callbackLock, &s.OnPlaybackComplete, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnPlaybackComplete callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnPlaybackComplete", "count", len(callback))
}

func (s *Sensor) InvokeOnPlaybackComplete(c types.ComponentMetadata, tone types.Tone) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnPlaybackComplete) {
		cb(c, tone)
	}
}

// ---------- Transient faults ----------

func (s *Sensor) RegisterOnOverrun(callback ...func(types.ComponentMetadata, int, int)) {
	appendCallbacks(&s.callbackLock, &s.OnOverrun, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnOverrun callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnOverrun", "count", len(callback))
}

func (s *Sensor) InvokeOnOverrun(c types.ComponentMetadata, toneID int, dropped int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnOverrun) {
		cb(c, toneID, dropped)
	}
}

func (s *Sensor) RegisterOnUnderrun(callback ...func(types.ComponentMetadata, int)) {
	appendCallbacks(&s.callbackLock, &s.OnUnderrun, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnUnderrun callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnUnderrun", "count", len(callback))
}

func (s *Sensor) InvokeOnUnderrun(c types.ComponentMetadata, toneID int) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnUnderrun) {
		cb(c, toneID)
	}
}

func (s *Sensor) RegisterOnStorageError(callback ...func(types.ComponentMetadata, int, error)) {
	appendCallbacks(&s.callbackLock, &s.OnStorageError, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnStorageError callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnStorageError", "count", len(callback))
}

func (s *Sensor) InvokeOnStorageError(c types.ComponentMetadata, toneID int, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStorageError) {
		cb(c, toneID, err)
	}
}

// ---------- Catalog ----------

func (s *Sensor) RegisterOnCatalogLoad(callback ...func(types.ComponentMetadata, types.Tone)) {
	appendCallbacks(&s.callbackLock, &s.OnCatalogLoad, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnCatalogLoad callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnCatalogLoad", "count", len(callback))
}

func (s *Sensor) InvokeOnCatalogLoad(c types.ComponentMetadata, tone types.Tone) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnCatalogLoad) {
		cb(c, tone)
	}
}

func (s *Sensor) RegisterOnCatalogReject(callback ...func(types.ComponentMetadata, string, error)) {
	appendCallbacks(&s.callbackLock, &s.OnCatalogReject, callback)
	s.NotifyLoggers(types.DebugLevel, "Registered OnCatalogReject callbacks", "component", s.GetComponentMetadata(), "event", "RegisterOnCatalogReject", "count", len(callback))
}

func (s *Sensor) InvokeOnCatalogReject(c types.ComponentMetadata, ref string, err error) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnCatalogReject) {
		cb(c, ref, err)
	}
}

// ---------- Meter-only counters ----------

func (s *Sensor) InvokeOnFramesPlayed(_ types.ComponentMetadata, n int) {
	if n > 0 {
		s.addMeterCounters(types.MetricFramesPlayed, uint64(n))
	}
}

func (s *Sensor) InvokeOnFramesDecoded(_ types.ComponentMetadata, n int) {
	if n > 0 {
		s.addMeterCounters(types.MetricFramesDecoded, uint64(n))
	}
}
