package types

// Sensor fans engine events out to registered callbacks, attached meters and loggers.
type Sensor interface {
	GetComponentMetadata() ComponentMetadata
	SetComponentMetadata(name string, id string)
	ConnectLogger(...Logger)
	ConnectMeter(...Meter)
	GetMeters() []Meter
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	RegisterOnStart(...func(c ComponentMetadata))
	RegisterOnStop(...func(c ComponentMetadata))
	RegisterOnStrum(...func(c ComponentMetadata, ev StrumEvent))
	RegisterOnToneSwitch(...func(c ComponentMetadata, from int, to int))
	RegisterOnPlaybackStart(...func(c ComponentMetadata, tone Tone))
	RegisterOnPlaybackComplete(...func(c ComponentMetadata, tone Tone))
	RegisterOnOverrun(...func(c ComponentMetadata, toneID int, dropped int))
	RegisterOnUnderrun(...func(c ComponentMetadata, toneID int))
	RegisterOnStorageError(...func(c ComponentMetadata, toneID int, err error))
	RegisterOnCatalogLoad(...func(c ComponentMetadata, tone Tone))
	RegisterOnCatalogReject(...func(c ComponentMetadata, ref string, err error))

	InvokeOnStart(c ComponentMetadata)
	InvokeOnStop(c ComponentMetadata)
	InvokeOnStrum(c ComponentMetadata, ev StrumEvent)
	InvokeOnToneSwitch(c ComponentMetadata, from int, to int)
	InvokeOnPlaybackStart(c ComponentMetadata, tone Tone)
	InvokeOnPlaybackComplete(c ComponentMetadata, tone Tone)
	InvokeOnOverrun(c ComponentMetadata, toneID int, dropped int)
	InvokeOnUnderrun(c ComponentMetadata, toneID int)
	InvokeOnStorageError(c ComponentMetadata, toneID int, err error)
	InvokeOnCatalogLoad(c ComponentMetadata, tone Tone)
	InvokeOnCatalogReject(c ComponentMetadata, ref string, err error)

	// InvokeOnFramesPlayed and InvokeOnFramesDecoded feed meters only.
	InvokeOnFramesPlayed(c ComponentMetadata, n int)
	InvokeOnFramesDecoded(c ComponentMetadata, n int)
}
