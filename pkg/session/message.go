package session

import (
	"encoding/json"
	"strconv"

	"github.com/fako1024/foodscale/pkg/scale"
)

// PlaceholderTimestamp is sent in place of a wall-clock timestamp
const PlaceholderTimestamp = "09/05/2017 18:00:00"

// Message denotes the outbound reading. Field order defines the key order on the wire
type Message struct {
	Timestamp string `json:"timestamp"`
	Weight    string `json:"weight"`
	FoodType  string `json:"foodtype"`
}

// NewMessage builds a message from a weight and a category
func NewMessage(weight int, category scale.Category) Message {
	return Message{
		Timestamp: PlaceholderTimestamp,
		Weight:    strconv.Itoa(weight),
		FoodType:  category.Name,
	}
}

// Encode serializes the message
func (m Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}
