package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// 쿼리 문자열 파싱 도우미. 값이 없으면 nil 을 돌려주고,
// 형식이 틀리면 오류를 돌려준다.

func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.New(name + " 값이 올바르지 않습니다")
	}

	return &value, nil
}

func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, errors.New(name + " 값은 YYYY-MM-DD 형식이어야 합니다")
	}

	return &value, nil
}
