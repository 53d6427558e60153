package database

import (
	"LuckyChat/config"
	"LuckyChat/models"
	"LuckyChat/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewDB 初始化数据库连接并迁移表结构
func NewDB(conf *config.Config) *gorm.DB {
	dsn := conf.MySQL.Dsn()
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMessage{},
		&models.RedPacket{},
		&models.Affection{},
		&models.Character{},
		&models.Persona{},
		&models.BankAccount{},
	)
	if err != nil {
		log.L.Fatal("auto migrate failed", zap.Error(err))
	}

	log.L.Info("connect database success")
	return db
}
