package event

import "encoding/json"

func NewGenericStringMessage(t EventType, msg string) DataInterface {
	return &GenericStringMessage{
		type_: t,
		msg:   msg,
	}
}

// GenericStringMessage carries a single string, the way the page reports
// every player event.
type GenericStringMessage struct {
	type_ EventType
	msg   string
}

func (m *GenericStringMessage) String() string {
	return m.msg
}
func (m *GenericStringMessage) Type() EventType {
	return m.type_
}

func (m *GenericStringMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.msg)
}

var _ DataInterface = (*GenericStringMessage)(nil)
