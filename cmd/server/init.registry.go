package main

import (
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ccnuzw/CTBMS-sub006/config"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
)

func InitRegistry() {
	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Departments,
		global.MongoDB_ColNames.Organizations,
		global.MongoDB_ColNames.CollectionPoints,
		global.MongoDB_ColNames.PointAllocations,
		global.MongoDB_ColNames.Commodities,
		global.MongoDB_ColNames.TaskTemplates,
		global.MongoDB_ColNames.Tasks,
		global.MongoDB_ColNames.TaskGroups,
		global.MongoDB_ColNames.TaskRules,
		global.MongoDB_ColNames.TaskHistory,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	return nil
}
