package utils

import (
	"fmt"
	"math/rand"
)

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// 0, O, 1, I 처럼 헷갈리는 문자는 초대 코드에서 제외한다
var inviteCodeLetters = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

func GenerateInviteCode(length int) string {
	code := make([]rune, length)
	for i := range code {
		code[i] = inviteCodeLetters[rand.Intn(len(inviteCodeLetters))]
	}
	return string(code)
}

var commonSurnames = []string{
	"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임",
	"한", "오", "서", "신", "권", "황", "안", "송", "전", "홍",
}
var commonNameSyllables = []string{
	"민", "서", "준", "현", "지", "우", "영", "수", "철", "호",
	"진", "석", "태", "경", "성", "훈", "재", "원", "용", "상",
}

func GenerateRandomKoreanName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	name := ""
	for i := 0; i < 2; i++ {
		name += commonNameSyllables[rand.Intn(len(commonNameSyllables))]
	}
	return surname + name
}

// GenerateRandomRRN 은 시드 전용의 가짜 주민등록번호를 만든다.
// 형식만 맞을 뿐 검증 자리수는 계산하지 않는다.
func GenerateRandomRRN() string {
	year := rand.Intn(50) + 50 // 1950~1999년생
	month := rand.Intn(12) + 1
	day := rand.Intn(28) + 1
	suffix := rand.Intn(1000000)
	gender := rand.Intn(2) + 1
	return fmt.Sprintf("%02d%02d%02d-%d%06d", year, month, day, gender, suffix)
}

func GenerateRandomPhone() string {
	return fmt.Sprintf("010-%04d-%04d", rand.Intn(10000), rand.Intn(10000))
}
