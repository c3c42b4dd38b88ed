package domain

import "errors"

// 핸들러 계층에서 HTTP 상태 코드로 한 번만 변환되는 공통 오류.
// 다른 회사의 행은 존재 여부를 숨기기 위해 항상 ErrNotFound 로 처리한다.
var (
	ErrInvalidArgument = errors.New("잘못된 요청입니다")
	ErrNotFound        = errors.New("대상을 찾을 수 없습니다")
	ErrLocked          = errors.New("지급 완료된 근무일지는 수정하거나 삭제할 수 없습니다")
	ErrConflict        = errors.New("이미 처리된 요청입니다")
)
