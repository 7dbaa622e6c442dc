package domain

import "time"

// Provider 是被记录工时的服务人员，停用后历史记录依然保留
type Provider struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userID"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
