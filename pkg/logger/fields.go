package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldPath 请求路径字段
	FieldPath = "path"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldSessionID 会话 ID 字段
	FieldSessionID = "sessionId"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldAccountID 交易账户 ID 字段
	FieldAccountID = "accountId"

	// FieldPlanID 交易计划 ID 字段
	FieldPlanID = "planId"

	// FieldJournalID 交易日志 ID 字段
	FieldJournalID = "journalId"

	// FieldNodeType TipTap 节点类型字段
	FieldNodeType = "nodeType"

	// FieldFormat 笔记格式字段
	FieldFormat = "format"
)
