package model

// 起動時に読み込む固定カタログの1件。DBには保存しない。
type Painting struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	FullTitle string `json:"fullTitle"`
	Category  string `json:"category"`
	Price     int64  `json:"price"`
	File      string `json:"file"`
	Badge     string `json:"badge,omitempty"`
}
