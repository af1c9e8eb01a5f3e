package builder

import (
	"github.com/joeydtaylor/strum/pkg/internal/sensor"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// NewSensor creates a sensor for engine telemetry.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	return sensor.NewSensor(options...)
}

// SensorWithLogger adds a logger to the Sensor.
func SensorWithLogger(logger ...types.Logger) types.Option[types.Sensor] {
	return sensor.WithLogger(logger...)
}

// SensorWithMeter attaches meters fed by the sensor's events.
func SensorWithMeter(meter ...types.Meter) types.Option[types.Sensor] {
	return sensor.WithMeter(meter...)
}

// SensorWithComponentMetadata adds component metadata overrides.
func SensorWithComponentMetadata(name string, id string) types.Option[types.Sensor] {
	return sensor.WithComponentMetadata(name, id)
}

func SensorWithOnStartFunc(callback ...func(c ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnStartFunc(callback...)
}

func SensorWithOnStopFunc(callback ...func(c ComponentMetadata)) types.Option[types.Sensor] {
	return sensor.WithOnStopFunc(callback...)
}

// SensorWithOnStrumFunc registers a callback for accepted strums.
func SensorWithOnStrumFunc(callback ...func(c ComponentMetadata, ev StrumEvent)) types.Option[types.Sensor] {
	return sensor.WithOnStrumFunc(callback...)
}

func SensorWithOnToneSwitchFunc(callback ...func(c ComponentMetadata, from int, to int)) types.Option[types.Sensor] {
	return sensor.WithOnToneSwitchFunc(callback...)
}

func SensorWithOnPlaybackStartFunc(callback ...func(c ComponentMetadata, tone Tone)) types.Option[types.Sensor] {
	return sensor.WithOnPlaybackStartFunc(callback...)
}

// SensorWithOnPlaybackCompleteFunc registers a callback for tones played to the end.
func SensorWithOnPlaybackCompleteFunc(callback ...func(c ComponentMetadata, tone Tone)) types.Option[types.Sensor] {
	return sensor.WithOnPlaybackCompleteFunc(callback...)
}

func SensorWithOnOverrunFunc(callback ...func(c ComponentMetadata, toneID int, dropped int)) types.Option[types.Sensor] {
	return sensor.WithOnOverrunFunc(callback...)
}

func SensorWithOnUnderrunFunc(callback ...func(c ComponentMetadata, toneID int)) types.Option[types.Sensor] {
	return sensor.WithOnUnderrunFunc(callback...)
}

func SensorWithOnStorageErrorFunc(callback ...func(c ComponentMetadata, toneID int, err error)) types.Option[types.Sensor] {
	return sensor.WithOnStorageErrorFunc(callback...)
}

func SensorWithOnCatalogLoadFunc(callback ...func(c ComponentMetadata, tone Tone)) types.Option[types.Sensor] {
	return sensor.WithOnCatalogLoadFunc(callback...)
}

// SensorWithOnCatalogRejectFunc registers a callback for tones excluded at catalog build.
func SensorWithOnCatalogRejectFunc(callback ...func(c ComponentMetadata, ref string, err error)) types.Option[types.Sensor] {
	return sensor.WithOnCatalogRejectFunc(callback...)
}
