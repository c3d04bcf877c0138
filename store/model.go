package store

type OpportunityStep struct {
	DexName       string `gorm:"type:varchar(32);not null"`
	Pool          string `gorm:"type:varchar(48);not null"`
	TokenIn       string `gorm:"type:varchar(48);not null"`
	AmountIn      uint64 `gorm:"type:bigint(20);not null"`
	TokenOut      string `gorm:"type:varchar(48);not null"`
	AmountOut     uint64 `gorm:"type:bigint(20);not null"`
	OpportunityId uint64 `gorm:"type:bigint(20);not null"`
}

type Opportunity struct {
	Id               uint64             `gorm:"primaryKey;type:bigint(20);not null"`
	Slot             uint64             `gorm:"type:bigint(20);not null"`
	AmountIn         uint64             `gorm:"type:bigint(20);not null"`
	GrossAmountOut   uint64             `gorm:"type:bigint(20);not null"`
	GrossProfit      uint64             `gorm:"type:bigint(20);not null"`
	TotalCost        uint64             `gorm:"type:bigint(20);not null"`
	NetProfit        uint64             `gorm:"type:bigint(20);not null"`
	NetProfitBps     uint64             `gorm:"type:bigint(20);not null"`
	Confidence       string             `gorm:"type:varchar(16);not null"`
	OpportunitySteps []*OpportunityStep `gorm:"foreignKey:OpportunityId;references:Id"`
}
