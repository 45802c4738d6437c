package model

import "time"

// Enterprise представляет бизнес-клиента (тенанта) платформы
type Enterprise struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// Interval - длительность слота в свободной форме ("30", "1h", "1hora").
	// Задаётся один раз при создании, nil = значение по умолчанию
	Interval  *string   `json:"interval"`
	CreatedAt time.Time `json:"created_at"`
}
