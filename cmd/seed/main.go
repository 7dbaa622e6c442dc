package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/config"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/domain"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/repository"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/seed"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var userID int64
	var month string
	var fixturePath string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机服务人员, 3: 插入随机工时记录, 4: 导入 fixture)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&userID, "user-id", 0, "服务人员和工时记录所属的用户 ID，操作 2、3 不指定时作用于所有用户")
	flag.StringVar(&month, "month", time.Now().Format("2006-01"), "随机工时记录所在的月份 (YYYY-MM)")
	flag.StringVar(&fixturePath, "fixture", "", "fixture 文件路径，默认使用配置中的 SEED_FIXTURE_PATH")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 操作 2、3 不指定用户时作用于所有用户，操作 4 必须指定用户
	var targets []*domain.User
	if op >= 2 && op <= 4 {
		switch {
		case userID > 0:
			user, err := repo.GetUserByID(userID)
			if err != nil {
				switch {
				case errors.Is(err, sql.ErrNoRows):
					slog.Error("指定的用户不存在", slog.Int64("user_id", userID))
				default:
					slog.Error("无法获取用户", slog.String("error", err.Error()))
				}
				return
			}
			targets = []*domain.User{user}
		case op == 4:
			slog.Error("请输入合法的用户 ID")
			return
		default:
			targets, err = repo.GetAllUsers()
			if err != nil {
				slog.Error("无法获取所有用户", slog.String("error", err.Error()))
				return
			}
		}
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			// 没有配置统一密码时随机生成一个，方便本地登录
			password := cfg.Seed.User.Password
			if password == "" {
				password = utils.GenerateRandomPassword(12)
				slog.Info("已生成随机密码", slog.String("password", password))
			}

			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机用户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入用户", slog.String("error", err.Error()))
					continue
				}

				if _, err := repo.GetOrCreateSettings(user.ID); err != nil {
					slog.Error("无法创建计价配置", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入用户成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的服务人员数量")
			return
		}

		cnt := 0
		for _, user := range targets {
			for i := 0; i < n; i++ {
				p := utils.GenerateRandomProvider(user.ID)
				if err := repo.CreateProvider(p); err != nil {
					slog.Error("无法插入服务人员", slog.String("error", err.Error()))
					continue
				}

				cnt++
			}
		}

		slog.Info("插入服务人员成功", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的工时记录数量")
			return
		}

		m, err := time.Parse("2006-01", month)
		if err != nil {
			slog.Error("月份格式错误", slog.String("month", month))
			return
		}

		cnt := 0
		for _, user := range targets {
			providers, err := repo.GetProvidersByUserID(user.ID)
			if err != nil {
				slog.Error("无法获取服务人员", slog.String("error", err.Error()))
				return
			}
			if len(providers) == 0 {
				slog.Warn("该用户还没有服务人员，跳过", slog.Int64("user_id", user.ID))
				continue
			}

			settings, err := repo.GetOrCreateSettings(user.ID)
			if err != nil {
				slog.Error("无法获取计价配置", slog.String("error", err.Error()))
				return
			}

			for i := 0; i < n; i++ {
				// 随机选一个服务人员
				p := providers[rand.Intn(len(providers))]

				wl := utils.GenerateRandomWorkLog(p, m)
				if err := utils.ValueWorkLog(wl, settings.RateSheet()); err != nil {
					slog.Error("无法计算工时记录", slog.String("error", err.Error()))
					continue
				}

				// 随机生成的记录可能和已有记录重复，直接跳过
				if err := repo.CreateWorkLog(wl); err != nil {
					slog.Error("无法插入工时记录", slog.String("error", err.Error()))
					continue
				}

				cnt++
			}
		}

		slog.Info("插入工时记录成功", slog.Int("count", cnt))
	case 4:
		if fixturePath == "" {
			fixturePath = cfg.Seed.FixturePath
		}

		f, err := seed.LoadFixtureFile(fixturePath)
		if err != nil {
			slog.Error("无法读取 fixture", slog.String("path", fixturePath), slog.String("error", err.Error()))
			return
		}

		stats, err := seed.Apply(repo, targets[0].ID, f)
		if err != nil {
			slog.Error("导入 fixture 失败", slog.String("error", err.Error()))
			return
		}

		slog.Info("导入 fixture 成功", slog.Int("providers", stats.Providers), slog.Int("work_logs", stats.WorkLogs), slog.Int("skipped", stats.Skipped))
	default:
		slog.Error("指定的操作非法")
	}
}
