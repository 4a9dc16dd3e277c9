package model

// MessageTimeLayout is the display format of guestbook timestamps.
const MessageTimeLayout = "2006-01-02 15:04:05"

type Message struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Text string `json:"text"`
	Time string `json:"time"`
}
