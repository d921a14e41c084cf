package models

// Task represents a single to-do item.
type Task struct {
	ID     int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title  string `json:"title" gorm:"not null"`
	IsDone bool   `json:"isDone" gorm:"not null"`
}
