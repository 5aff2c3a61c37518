package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/0xdevcollins/boundless-sub003/pkg/config"
)

// 数据库迁移工具。服务启动时的 AutoMigrate 负责开发环境，
// 生产环境用这里的版本化 SQL。
func main() {
	direction := flag.String("direction", "up", "迁移方向: up / down")
	steps := flag.Int("steps", 0, "迁移步数, 0 表示全部")
	flag.Parse()

	config.Init()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		config.Global.DB.User, config.Global.DB.Password,
		config.Global.DB.Host, config.Global.DB.Port, config.Global.DB.Name)

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatalf("初始化迁移失败: %v", err)
	}
	defer m.Close()

	switch *direction {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	default:
		log.Fatalf("未知的迁移方向: %s", *direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("迁移执行失败: %v", err)
	}
	log.Println("迁移完成")
}
