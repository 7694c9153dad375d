package code

// 通用
var (
	Success                   = NewSuss(1, lang{en: "Success", zh_cn: "成功"})
	Failed                    = NewError(400, ClassInternal, lang{en: "Failed", zh_cn: "失败"})
	ErrorServerInternal       = NewError(500, ClassInternal, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorInvalidParams        = NewError(501, ClassBadUserInput, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorNotFoundAPI          = NewError(502, ClassNotFound, lang{en: "API not found", zh_cn: "接口不存在"})
	ErrorTooManyRequests      = NewError(503, ClassTooManyRequest, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery              = NewError(504, ClassInternal, lang{en: "Database query failed", zh_cn: "数据库查询失败"})
	ErrorNotUserAuthToken     = NewError(505, ClassUnauthorized, lang{en: "Not authenticated", zh_cn: "未登录"})
	ErrorInvalidUserAuthToken = NewError(506, ClassUnauthorized, lang{en: "Invalid or expired session", zh_cn: "会话无效或已过期"})
	ErrorWriteQueueBusy       = NewError(507, ClassInternal, lang{en: "Too many pending writes, try again later", zh_cn: "写入繁忙，请稍后再试"})
)

// 用户与登录
var (
	ErrorUserNotFound      = NewError(600, ClassNotFound, lang{en: "User not found", zh_cn: "用户不存在"})
	ErrorOAuthState        = NewError(601, ClassUnauthorized, lang{en: "OAuth state mismatch", zh_cn: "OAuth 状态校验失败"})
	ErrorOAuthExchange     = NewError(602, ClassUnauthorized, lang{en: "OAuth code exchange failed", zh_cn: "OAuth 授权码换取失败"})
	ErrorOAuthProfile      = NewError(603, ClassUnauthorized, lang{en: "Failed to load Google profile", zh_cn: "获取 Google 用户信息失败"})
	ErrorOAuthNotConfigure = NewError(604, ClassInternal, lang{en: "Google login is not configured", zh_cn: "未配置 Google 登录"})
	ErrorSessionCreate     = NewError(605, ClassInternal, lang{en: "Failed to create session", zh_cn: "创建会话失败"})
	SuccessLogout          = NewSuss(606, lang{en: "Logged out successfully", zh_cn: "已退出登录"})
)

// 交易账户
var (
	ErrorAccountSizeInvalid     = NewError(700, ClassBadUserInput, lang{en: "Account size must be a positive number", zh_cn: "账户资金必须为正数"})
	ErrorTradingAccountNotFound = NewError(701, ClassNotFound, lang{en: "Trading account not found", zh_cn: "交易账户不存在"})
	ErrorTradingAccountCreate   = NewError(702, ClassInternal, lang{en: "Failed to create trading account", zh_cn: "创建交易账户失败"})
	ErrorTradingAccountDenied   = NewError(703, ClassUnauthorized, lang{en: "Trading account not found or unauthorized", zh_cn: "交易账户不存在或无权访问"})
	ErrorInvalidEnumValue       = NewError(704, ClassBadUserInput, lang{en: "Invalid enum value", zh_cn: "枚举值无效"})
)

// 安全网
var (
	ErrorSafetyNetCreate = NewError(750, ClassInternal, lang{en: "Failed to create safety net", zh_cn: "创建安全网失败"})
	SuccessSafetyNet     = NewSuss(751, lang{en: "Safety net created successfully", zh_cn: "安全网创建成功"})
)

// 交易计划
var (
	ErrorTradingPlanExists       = NewError(800, ClassConflict, lang{en: "Trading plan already exists. Use updateTradingPlan instead.", zh_cn: "交易计划已存在，请使用 updateTradingPlan"})
	ErrorTradingPlanNotFound     = NewError(801, ClassNotFound, lang{en: "Trading plan not found", zh_cn: "交易计划不存在"})
	ErrorTradingPlanNotShareable = NewError(802, ClassNotFound, lang{en: "You must first create or edit your plan before sharing.", zh_cn: "请先创建或编辑你的交易计划再分享"})
	ErrorTradingPlanCreate       = NewError(803, ClassInternal, lang{en: "Failed to create trading plan", zh_cn: "创建交易计划失败"})
	ErrorTradingPlanUpdate       = NewError(804, ClassInternal, lang{en: "Failed to update trading plan", zh_cn: "更新交易计划失败"})
	ErrorSharedPlanNotFound      = NewError(805, ClassNotFound, lang{en: "Shared plan not found", zh_cn: "分享的计划不存在"})
	ErrorSharedPlanExpired       = NewError(806, ClassNotFound, lang{en: "Shared plan has expired", zh_cn: "分享链接已过期"})
	ErrorSharedPlanViewed        = NewError(807, ClassNotFound, lang{en: "This private plan has already been viewed", zh_cn: "该私密计划已被查看"})
	ErrorInvalidRenderFormat     = NewError(808, ClassBadUserInput, lang{en: "Unsupported note format", zh_cn: "不支持的笔记格式"})
	SuccessTradingPlanFound      = NewSuss(810, lang{en: "Trading plan retrieved successfully", zh_cn: "获取交易计划成功"})
	SuccessTradingPlanCreated    = NewSuss(811, lang{en: "Trading plan created successfully", zh_cn: "交易计划创建成功"})
	SuccessTradingPlanUpdated    = NewSuss(812, lang{en: "Trading plan updated successfully", zh_cn: "交易计划更新成功"})
	SuccessTradingPlanNote       = NewSuss(813, lang{en: "Trading plan note updated successfully", zh_cn: "交易计划笔记更新成功"})
	SuccessTradingPlanShared     = NewSuss(814, lang{en: "Trading plan shared successfully", zh_cn: "交易计划分享成功"})
	SuccessSharedPlanFound       = NewSuss(815, lang{en: "Shared plan retrieved successfully", zh_cn: "获取分享计划成功"})
)

// 交易日志
var (
	ErrorJournalIDRequired      = NewError(900, ClassBadUserInput, lang{en: "Journal ID is required", zh_cn: "日志 ID 不能为空"})
	ErrorJournalNotFound        = NewError(901, ClassNotFound, lang{en: "Journal not found", zh_cn: "交易日志不存在"})
	ErrorJournalNoFields        = NewError(902, ClassBadUserInput, lang{en: "No valid fields provided for update", zh_cn: "没有可更新的字段"})
	ErrorJournalAccountRequired = NewError(903, ClassBadUserInput, lang{en: "At least one account is required", zh_cn: "至少需要一个交易账户"})
	ErrorJournalCreate          = NewError(904, ClassInternal, lang{en: "Failed to create journal", zh_cn: "创建交易日志失败"})
	ErrorJournalTemplateMissing = NewError(905, ClassNotFound, lang{en: "Journal template not found", zh_cn: "日志模板不存在"})
	ErrorInvalidDecimal         = NewError(906, ClassBadUserInput, lang{en: "Invalid decimal value", zh_cn: "数值格式错误"})
	ErrorJournalUpdate          = NewError(907, ClassInternal, lang{en: "Failed to update journal", zh_cn: "更新交易日志失败"})
	ErrorJournalTemplateUpdate  = NewError(908, ClassInternal, lang{en: "Failed to update journal template", zh_cn: "更新日志模板失败"})
	SuccessJournalCreated       = NewSuss(910, lang{en: "Journal created successfully", zh_cn: "交易日志创建成功"})
	SuccessJournalUpdated       = NewSuss(911, lang{en: "Journal updated successfully", zh_cn: "交易日志更新成功"})
	SuccessJournalTemplate      = NewSuss(912, lang{en: "Journal template updated successfully", zh_cn: "日志模板更新成功"})
)

// 仪表盘
var (
	ErrorDashboardNotReady = NewError(950, ClassNotFound, lang{en: "Trading plan or journal template not found", zh_cn: "交易计划或日志模板不存在"})
)
