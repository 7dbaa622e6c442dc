package handler

type ContextKey string

var (
	RequestIDCtxKey ContextKey = "requestID"
	SubCtxKey       ContextKey = "sub"
	MyInfoCtx       ContextKey = "myInfo"
	ProviderCtx     ContextKey = "provider"
	WorkLogCtx      ContextKey = "workLog"
)
