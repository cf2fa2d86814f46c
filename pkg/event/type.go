package event

type EventType string

const TypeReady EventType = "ready"
const TypeStateChange EventType = "state-change"
const TypeQualityChange EventType = "quality-change"
const TypePlayerError EventType = "player-error"
const TypeStringMessage EventType = "message"
