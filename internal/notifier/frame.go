package notifier

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/sayemkalim/casesync/internal/domain"
	"github.com/sayemkalim/casesync/internal/model"
)

// EventMessageSent is the realtime event name notifications arrive under.
const EventMessageSent = "MessageSent"

var errNotAnObject = errors.New("frame is not a JSON object")

// Frame is a decoded realtime payload. Event may be empty when the producer
// does not tag frames.
type Frame struct {
	Event        string
	Notification model.Notification
}

// ParseFrame decodes a raw realtime payload. Producers are inconsistent: the
// body may be a JSON object or a JSON-encoded string containing the object
// (double-encoded). The id arrives as either notificationId or id, as a
// string or a number; both are normalized here, at the single ingestion
// boundary. A failure at any decode level is an error the caller is expected
// to drop silently.
func ParseFrame(body []byte) (Frame, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		parseFailures.Inc()
		return Frame{}, err
	}
	// Unwrap up to two levels of string encoding.
	for i := 0; i < 2; i++ {
		s, ok := raw.(string)
		if !ok {
			break
		}
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			parseFailures.Inc()
			return Frame{}, err
		}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		parseFailures.Inc()
		return Frame{}, errNotAnObject
	}

	id := stringField(obj, "notificationId")
	if id == "" {
		id = stringField(obj, "id")
	}

	return Frame{
		Event: stringField(obj, "event"),
		Notification: model.Notification{
			ID:      id,
			UserID:  stringField(obj, "user_id"),
			Type:    domain.NormalizeNotificationType(stringField(obj, "type")),
			Name:    stringField(obj, "name"),
			Message: stringField(obj, "message"),
			Profile: stringField(obj, "profile"),
		},
	}, nil
}

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
