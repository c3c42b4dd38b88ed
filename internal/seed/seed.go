package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/pii"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/repository"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/service"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/utils"
)

var siteNames = []string{
	"강남 오피스텔 신축", "판교 물류센터 증축", "수원 아파트 리모델링", "인천 공장 보수",
}

var workDescriptions = []string{
	"형틀 작업", "철근 배근", "콘크리트 타설", "미장 작업", "배관 설비", "전기 배선", "자재 정리",
}

var expenseTitles = []string{
	"자재 구입", "장비 대여", "식대", "유류비", "폐기물 처리",
}

// SeedDemoData 는 데모용 회사 하나와 그 아래의 관리자, 팀장, 현장,
// 근로자, 근무일지, 지출결의서를 만든다. 일부 근무일지는 지급완료
// 상태로 만들어 화면에서 두 상태를 모두 볼 수 있게 한다.
func SeedDemoData(repo *repository.Repository, vault pii.Vault, managerPassword string) error {
	ctx := context.Background()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(managerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// 회사와 대표 관리자
	managerEmail := "manager@example.com"
	company := &domain.Company{
		Name:       "한빛종합건설",
		InviteCode: utils.GenerateInviteCode(8),
	}
	manager := &domain.Author{
		Role:         domain.RoleManager,
		Name:         utils.GenerateRandomKoreanName(),
		Email:        &managerEmail,
		PasswordHash: string(passwordHash),
		IsActive:     true,
	}
	if err := repo.CreateCompanyWithManager(ctx, company, manager); err != nil {
		return err
	}
	slog.Info("회사 생성 완료", "company", company.Name, "inviteCode", company.InviteCode, "managerEmail", managerEmail)

	// 팀장 세 명
	foremen := make([]*domain.Author, 0, 3)
	for i := 0; i < 3; i++ {
		phone := utils.GenerateRandomPhone()
		foreman := &domain.Author{
			CompanyID:    company.ID,
			Role:         domain.RoleForeman,
			Name:         utils.GenerateRandomKoreanName(),
			Phone:        &phone,
			PasswordHash: string(passwordHash),
			DailyRate:    int64(rand.Intn(10)+15) * 10000,
			IsActive:     true,
		}
		if err := repo.CreateAuthor(ctx, foreman); err != nil {
			return err
		}
		foremen = append(foremen, foreman)
	}

	// 현장 두 곳, 팀장을 번갈아 배정한다
	sites := make([]*domain.Site, 0, 2)
	for i := 0; i < 2; i++ {
		site := &domain.Site{
			CompanyID: company.ID,
			ManagerID: manager.ID,
			Name:      siteNames[rand.Intn(len(siteNames))] + fmt.Sprintf(" %d공구", i+1),
			Address:   "경기도 성남시",
			Status:    domain.SiteStatusActive,
		}
		if err := repo.CreateSite(ctx, site); err != nil {
			return err
		}
		sites = append(sites, site)
	}
	for i, foreman := range foremen {
		if err := repo.AssignForeman(ctx, sites[i%len(sites)].ID, foreman.ID); err != nil {
			return err
		}
	}

	workers := service.NewWorkerService(repo, vault)
	workLogs := service.NewWorkLogService(repo, repo, repo)
	expenses := service.NewExpenseService(repo, repo)
	payments := service.NewPaymentService(repo)

	// 팀장마다 근로자 네 명
	workersByForeman := map[int64][]*domain.Worker{}
	for _, foreman := range foremen {
		for i := 0; i < 4; i++ {
			worker, err := workers.Create(ctx, company.ID, foreman.ID, service.CreateWorkerInput{
				Name:      utils.GenerateRandomKoreanName(),
				RRN:       utils.GenerateRandomRRN(),
				Phone:     utils.GenerateRandomPhone(),
				DailyRate: int64(rand.Intn(10)+12) * 10000,
			})
			if err != nil {
				return err
			}
			workersByForeman[foreman.ID] = append(workersByForeman[foreman.ID], worker)
		}
	}

	// 최근 2주 치 근무일지
	logIDs := []int64{}
	for i, foreman := range foremen {
		site := sites[i%len(sites)]
		for day := 1; day <= 14; day++ {
			workDate := time.Now().AddDate(0, 0, -day)
			for _, worker := range workersByForeman[foreman.ID] {
				if rand.Intn(3) == 0 { // 매일 전원이 일하지는 않는다
					continue
				}
				log, err := workLogs.Create(ctx, company.ID, foreman.ID, service.CreateWorkLogInput{
					SiteID:      site.ID,
					WorkerID:    worker.ID,
					WorkDate:    workDate,
					Description: workDescriptions[rand.Intn(len(workDescriptions))],
					Effort:      []float64{0.5, 1, 1, 1, 1.5}[rand.Intn(5)],
				})
				if err != nil {
					return err
				}
				logIDs = append(logIDs, log.ID)
			}
		}
	}

	// 지출결의서 몇 건
	for i, foreman := range foremen {
		site := sites[i%len(sites)]
		for j := 0; j < 3; j++ {
			expense, err := expenses.Create(ctx, company.ID, foreman.ID, service.CreateExpenseInput{
				SiteID:      site.ID,
				Title:       expenseTitles[rand.Intn(len(expenseTitles))],
				Content:     "데모 지출 내역",
				Amount:      int64(rand.Intn(30)+1) * 10000,
				ExpenseDate: time.Now().AddDate(0, 0, -rand.Intn(14)-1),
			})
			if err != nil {
				return err
			}
			// 일부는 승인까지 해 둔다
			if j == 0 {
				if _, err := expenses.Approve(ctx, company.ID, manager.ID, expense.ID); err != nil {
					return err
				}
			}
		}
	}

	// 근무일지 절반 정도를 지급완료로 만든다
	if len(logIDs) > 1 {
		paid := logIDs[:len(logIDs)/2]
		if err := payments.MarkPaid(ctx, company.ID, manager.ID, paid, time.Now()); err != nil {
			return err
		}
	}

	slog.Info("데모 데이터 생성 완료",
		"foremen", len(foremen),
		"sites", len(sites),
		"workLogs", len(logIDs),
	)

	return nil
}
