package store

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Dao struct {
	db *gorm.DB
}

func NewDao(url, scheme, user, passwd string) *Dao {
	dao := &Dao{}
	Logger := logger.Default
	Logger = Logger.LogMode(logger.Warn)
	db, err := gorm.Open(mysql.Open(user+":"+passwd+"@tcp("+url+")/"+
		scheme+"?charset=utf8"), &gorm.Config{Logger: Logger})
	if err != nil {
		panic(err)
	}
	err = db.AutoMigrate(&Opportunity{}, &OpportunityStep{})
	if err != nil {
		panic(err)
	}
	dao.db = db
	return dao
}

func (dao *Dao) SaveOpportunity(opp *Opportunity) error {
	return dao.db.Create(opp).Error
}

func (dao *Dao) SelectOpportunity(id uint64) ([]*Opportunity, error) {
	opportunities := make([]*Opportunity, 0)
	res := dao.db.Where("id = ?", id).Preload("OpportunitySteps").Find(&opportunities)
	return opportunities, res.Error
}

func (dao *Dao) SelectLatestOpportunities(limit int) ([]*Opportunity, error) {
	opportunities := make([]*Opportunity, 0)
	res := dao.db.Order("id desc").Limit(limit).Preload("OpportunitySteps").Find(&opportunities)
	return opportunities, res.Error
}
