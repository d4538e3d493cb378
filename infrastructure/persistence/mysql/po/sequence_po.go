package po

// SequencePO backs the id generator: every insert allocates the next
// auto-increment value for the given scope.
type SequencePO struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Scope string `gorm:"size:32;index;not null"`
}

func (SequencePO) TableName() string {
	return "id_sequences"
}
