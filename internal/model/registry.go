package model

// AllModels 返回需要自动迁移的全部模型。
// 新增模型时记得在这里登记。
func AllModels() []interface{} {
	return []interface{}{
		&Project{},
		&Contribution{},
		&Milestone{},
		&ChainTransaction{},
		&Notification{},
		&OutboxMessage{},
	}
}
