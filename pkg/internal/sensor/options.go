// Package sensor provides options for configuring Sensor components.
//
// This file defines the options used to customize a Sensor: attaching loggers
// and meters, and registering callbacks for engine events such as OnStrum or
// OnUnderrun.
package sensor

import "github.com/joeydtaylor/strum/pkg/internal/types"

// WithLogger creates an option to add a logger to a Sensor.
//
// Parameters:
//   - logger: One or more logger instances to be added to the Sensor for logging.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that, when called with a Sensor component,
//	connects the specified logger(s) to the Sensor.
func WithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectLogger(logger...)
	}
}

// WithMeter creates an option to forward sensor events to one or more meters.
//
// Parameters:
//   - meter: One or more meters that will receive counter updates.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that connects the meter(s).
func WithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.ConnectMeter(meter...)
	}
}

// WithComponentMetadata sets the sensor name and id.
func WithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.SetComponentMetadata(name, id)
	}
}

// WithOnStartFunc creates an option to register a callback invoked when a component starts.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnStart event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnStartFunc(callback ...func(c types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStart(callback...)
	}
}

// WithOnStopFunc creates an option to register a callback invoked when a component stops.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnStop event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnStopFunc(callback ...func(c types.ComponentMetadata)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStop(callback...)
	}
}

// WithOnStrumFunc creates an option to register a callback invoked when the onset detector accepts a strum.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnStrum event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnStrumFunc(callback ...func(c types.ComponentMetadata, ev types.StrumEvent)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStrum(callback...)
	}
}

// WithOnToneSwitchFunc creates an option to register a callback invoked when the controller switches the active tone.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnToneSwitch event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnToneSwitchFunc(callback ...func(c types.ComponentMetadata, from int, to int)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnToneSwitch(callback...)
	}
}

// WithOnPlaybackStartFunc creates an option to register a callback invoked when the player clock starts after the first fill.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnPlaybackStart event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnPlaybackStartFunc(callback ...func(c types.ComponentMetadata, tone types.Tone)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnPlaybackStart(callback...)
	}
}

// WithOnPlaybackCompleteFunc creates an option to register a callback invoked when a tone plays to the end and the controller returns to idle.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnPlaybackComplete event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnPlaybackCompleteFunc(callback ...func(c types.ComponentMetadata, tone types.Tone)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnPlaybackComplete(callback...)
	}
}

// WithOnOverrunFunc creates an option to register a callback invoked when decoded frames are dropped because the ring is full.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnOverrun event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnOverrunFunc(callback ...func(c types.ComponentMetadata, toneID int, dropped int)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnOverrun(callback...)
	}
}

// WithOnUnderrunFunc creates an option to register a callback invoked when the player finds the ring empty before the tone is finished.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnUnderrun event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnUnderrunFunc(callback ...func(c types.ComponentMetadata, toneID int)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnUnderrun(callback...)
	}
}

// WithOnStorageErrorFunc creates an option to register a callback invoked when a storage read fails and playback is abandoned.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnStorageError event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnStorageErrorFunc(callback ...func(c types.ComponentMetadata, toneID int, err error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnStorageError(callback...)
	}
}

// WithOnCatalogLoadFunc creates an option to register a callback invoked when a tone passes header validation.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnCatalogLoad event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnCatalogLoadFunc(callback ...func(c types.ComponentMetadata, tone types.Tone)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnCatalogLoad(callback...)
	}
}

// WithOnCatalogRejectFunc creates an option to register a callback invoked when a tone fails header validation and is excluded.
//
// Parameters:
//   - callback: One or more callback functions to be registered for the OnCatalogReject event.
//
// Returns:
//
//	A function conforming to types.Option[types.Sensor] that registers the callback(s).
func WithOnCatalogRejectFunc(callback ...func(c types.ComponentMetadata, ref string, err error)) types.Option[types.Sensor] {
	return func(s types.Sensor) {
		s.RegisterOnCatalogReject(callback...)
	}
}
