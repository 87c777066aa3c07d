package catalog

import (
	"strings"

	"flexyframe/internal/domain/model"
)

// ボットとサイトの両方が使う中央集権的なカタログ。
// 実行中は不変なのでロックは不要。
type Catalog struct {
	paintings []model.Painting
	byID      map[int64]model.Painting
}

func New(paintings []model.Painting) *Catalog {
	byID := make(map[int64]model.Painting, len(paintings))
	for _, p := range paintings {
		byID[p.ID] = p
	}
	return &Catalog{paintings: paintings, byID: byID}
}

// Default は作品の固定リストでカタログを作る
func Default() *Catalog {
	return New(defaultPaintings)
}

func (c *Catalog) FindByID(id int64) (model.Painting, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// FindByTitle はtitleまたはfullTitleの完全一致で探す
func (c *Catalog) FindByTitle(title string) (model.Painting, bool) {
	for _, p := range c.paintings {
		if p.Title == title || p.FullTitle == title {
			return p, true
		}
	}
	return model.Painting{}, false
}

// MatchTitle はメニューのボタンテキストのようにtitleを含む文字列でも探せる
func (c *Catalog) MatchTitle(text string) (model.Painting, bool) {
	for _, p := range c.paintings {
		if strings.Contains(text, p.Title) {
			return p, true
		}
	}
	return model.Painting{}, false
}

// List は定義順のコピーを返す
func (c *Catalog) List() []model.Painting {
	out := make([]model.Painting, len(c.paintings))
	copy(out, c.paintings)
	return out
}

var defaultPaintings = []model.Painting{
	{
		ID:        1,
		Title:     "Аркейн Триумвират",
		FullTitle: "Аркейн Триумвират Заводского Города",
		Category:  "Аркейн",
		Price:     4200,
		File:      "Аркейн Триумвират Заводского Города.jpg",
		Badge:     "Хит",
	},
	{
		ID:        2,
		Title:     "Глитч-Давид",
		FullTitle: "Глитч-Давид Рождение в цифровом хаосе",
		Category:  "Давид",
		Price:     4200,
		File:      "Глитч-Давид Рождение в цифровом хаосе.jpg",
		Badge:     "Новинка",
	},
	{
		ID:        3,
		Title:     "Цифровая Древность",
		FullTitle: "Цифровая Древность Голубой Давид",
		Category:  "Давид",
		Price:     4200,
		File:      "Цифровая Древность Голубой Давид.jpg",
	},
	{
		ID:        4,
		Title:     "Железный Человек",
		FullTitle: "Железный Человек Перерыв на обед",
		Category:  "Железный Человек",
		Price:     4200,
		File:      "Железный Человек Перерыв на обед.jpg",
	},
	{
		ID:        5,
		Title:     "Мысли в облаках",
		FullTitle: "Мысли в облаках",
		Category:  "Земфира",
		Price:     4200,
		File:      "Мысли в облаках.jpg",
	},
	{
		ID:        6,
		Title:     "КэнтоНанами",
		FullTitle: "КэнтоНанами",
		Category:  "Магическая битва",
		Price:     4200,
		File:      "КэнтоНанами.png",
		Badge:     "Хит",
	},
	{
		ID:        7,
		Title:     "Скрудж Макдак",
		FullTitle: "Скрудж Макдак Граффити-Миллиардер",
		Category:  "Скрудж",
		Price:     4200,
		File:      "Скрудж Макдак Граффити-Миллиардер.jpg",
	},
	{
		ID:        8,
		Title:     "Танос Император",
		FullTitle: "Танос Император Бесконечности",
		Category:  "Танос",
		Price:     4200,
		File:      "Танос Император Бесконечности.jpg",
	},
	{
		ID:        9,
		Title:     "Геймерский Энерджи",
		FullTitle: "Геймерский Энерджи Граффити на контроллере",
		Category:  "Live",
		Price:     4200,
		File:      "Геймерский Энерджи Граффити на контроллере.jpg",
		Badge:     "Хит",
	},
	{
		ID:        10,
		Title:     "Ночной Волк",
		FullTitle: "Ночной Волк Мастер звуков",
		Category:  "Live",
		Price:     4200,
		File:      "Ночной Волк Мастер звуков.jpg",
	},
	{
		ID:        11,
		Title:     "Примат Премиум",
		FullTitle: "Примат Премиум Король улицы",
		Category:  "Live",
		Price:     4200,
		File:      "Примат Премиум Король улицы.jpg",
	},
}
