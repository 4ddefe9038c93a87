package data

import (
	"database/sql"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/pr_presence/app/presence/internal/conf"
)

// Data 监测库连接，未配置数据源时为空
type Data struct {
	db *sql.DB
}

// NewData 打开监测库连接
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	if c == nil || c.Database == nil || c.Database.Source == "" {
		helper.Info("no database configured, corpus will be read from fixture")
		return &Data{}, func() {}, nil
	}

	driver := c.Database.Driver
	if driver == "" {
		driver = "postgres"
	}
	db, err := sql.Open(driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}

// DB 返回底层连接，可能为 nil
func (d *Data) DB() *sql.DB {
	return d.db
}
