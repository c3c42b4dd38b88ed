package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/config"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/pii"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/repository"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int

	flag.IntVar(&op, "op", 0, "실행할 작업 (1: 데모 데이터 생성)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 설정 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("설정을 읽을 수 없습니다", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 데이터베이스 연결 풀 생성
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("데이터베이스 연결 풀을 만들 수 없습니다", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 은 연결 풀 객체만 만들고 실제로 접속하지 않으므로 명시적으로 ping 한다
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("데이터베이스에 연결할 수 없습니다", "error", err)
		return
	}

	// repository 와 개인정보 금고 생성
	repo := repository.NewRepository(cfg, dbpool)

	vault, err := pii.NewAESVault(cfg.Vault.EncryptionKey, cfg.Vault.HMACKey)
	if err != nil {
		logger.Error("개인정보 금고를 만들 수 없습니다", "error", err)
		return
	}

	// 작업 실행
	switch op {
	case 0:
		slog.Error("작업을 지정해 주세요")
	case 1:
		if err := seed.SeedDemoData(repo, vault, cfg.Seed.ManagerPassword); err != nil {
			slog.Error("데모 데이터 생성 실패", slog.String("error", err.Error()))
			os.Exit(1)
		}
	default:
		slog.Error("지원하지 않는 작업입니다")
	}
}
