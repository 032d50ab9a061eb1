package telegram

// Update is the payload Telegram posts to the webhook. Only the fields the
// bot reads are declared.
type Update struct {
	UpdateID      int64    `json:"update_id"`
	Message       *Message `json:"message"`
	EditedMessage *Message `json:"edited_message"`
}

// Message is an inbound chat message.
type Message struct {
	MessageID       int         `json:"message_id"`
	From            *User       `json:"from"`
	Chat            Chat        `json:"chat"`
	MessageThreadID int         `json:"message_thread_id"`
	Text            string      `json:"text"`
	Caption         string      `json:"caption"`
	Photo           []PhotoSize `json:"photo"`
}

// Content returns the message text, falling back to the photo caption.
func (m *Message) Content() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// HasPhoto reports whether the message carries an image.
func (m *Message) HasPhoto() bool {
	return len(m.Photo) > 0
}

// User is the sender of a message.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// FullName joins first and last name the way operator labels are stored in
// the ledgers.
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

// Chat identifies where a message came from.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// PhotoSize is one resolution of an attached photo.
type PhotoSize struct {
	FileID string `json:"file_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
