package usecase

import (
	"strconv"
	"strings"
)

// MiniAppやサイトから渡されるstartパラメータの解析結果
type StartParam struct {
	PaintingID int64
	Token      string
}

// ParseStartParam は歴代3形式のディープリンクを1つの寛容なパーサで読む：
//
//	order_<id>_<token>
//	order_<id>
//	<id>_<price>   （旧形式。priceは捨てる）
//	<id>
//
// 読めない入力はok=falseで返し、下流では「картина не найдена」扱いにする。
func ParseStartParam(param string) (StartParam, bool) {
	param = strings.TrimSpace(param)
	if param == "" {
		return StartParam{}, false
	}

	if strings.HasPrefix(param, "order_") {
		parts := strings.Split(param, "_")
		if len(parts) < 2 {
			return StartParam{}, false
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			return StartParam{}, false
		}
		sp := StartParam{PaintingID: id}
		if len(parts) >= 3 && parts[2] != "" {
			sp.Token = parts[2]
		}
		return sp, true
	}

	//旧形式：先頭セグメントだけ見る
	head := param
	if i := strings.IndexByte(param, '_'); i >= 0 {
		head = param[:i]
	}
	id, err := strconv.ParseInt(head, 10, 64)
	if err != nil || id <= 0 {
		return StartParam{}, false
	}
	return StartParam{PaintingID: id}, true
}
