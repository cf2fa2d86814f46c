package event

import (
	"encoding/json"
	"fmt"
	"time"

	"emperror.dev/errors"
)

type DataInterface interface {
	String() string
	Type() EventType
}

func NewEvent(data DataInterface, source string) (*Event, error) {
	jsonStr, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot marshal event data: %v", data)
	}
	return &Event{
		Type:   data.Type(),
		Source: source,
		Time:   time.Now(),
		Data:   jsonStr,
	}, nil
}

// Event is sent to the clients of the control server.
type Event struct {
	Type   EventType       `json:"type"`
	Source string          `json:"source"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

func (e *Event) String() string {
	return fmt.Sprintf("%s <- %s", e.Type, e.Source)
}

func (e *Event) GetType() EventType {
	return e.Type
}

func (e *Event) GetSource() string {
	return e.Source
}

func (e *Event) GetData() (string, error) {
	var msg string
	if len(e.Data) == 0 {
		return "", nil
	}
	if err := json.Unmarshal(e.Data, &msg); err != nil {
		return "", errors.Wrapf(err, "cannot unmarshal %s event message: %s", e.Type, string(e.Data))
	}
	return msg, nil
}
