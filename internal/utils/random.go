package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomProvider(userID int64) *domain.Provider {
	return &domain.Provider{
		UserID: userID,
		Name:   GenerateRandomChineseName(),
	}
}

// 常见的几种班次：白班、夜班、跨白天夜间的加班，以及任意的短班
var commonShifts = [][2]string{
	{"07:00:00", "19:00:00"},
	{"19:00:00", "07:00:00"},
	{"22:00:00", "06:00:00"},
	{"18:00:00", "23:00:00"},
	{"05:00:00", "09:00:00"},
}

// GenerateRandomWorkLog 在 month 所在月份中随机选一天生成一条未计价的工时记录
func GenerateRandomWorkLog(provider *domain.Provider, month time.Time) *domain.WorkLog {
	daysInMonth := month.AddDate(0, 1, -1).Day()

	wl := &domain.WorkLog{
		UserID:     provider.UserID,
		ProviderID: provider.ID,
		Date:       month.AddDate(0, 0, rand.Intn(daysInMonth)),
		MealsQty:   rand.Intn(6),
	}

	if rand.Intn(3) == 0 {
		startHour := rand.Intn(24)
		startMinute := rand.Intn(4) * 15
		length := rand.Intn(12*60) + 30
		endMinutes := (startHour*60 + startMinute + length) % (24 * 60)

		wl.StartTime = fmt.Sprintf("%02d:%02d:00", startHour, startMinute)
		wl.EndTime = fmt.Sprintf("%02d:%02d:00", endMinutes/60, endMinutes%60)
	} else {
		shift := commonShifts[rand.Intn(len(commonShifts))]
		wl.StartTime, wl.EndTime = shift[0], shift[1]
	}

	return wl
}
