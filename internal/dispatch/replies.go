package dispatch

import "strings"

// User-facing reply templates. Wording is fixed; only the date and event
// text are substituted.
const (
	replyAdded        = "✅ 已幫你記下 %s：%s"
	replyTodayEmpty   = "📭 今天沒有任何行程喔～"
	replyDateEmpty    = "📭 %s 沒有安排任何行程喔"
	replyDeletedAll   = "🗑️ 已刪除 %s 所有行程"
	replyDeletedOne   = "🗑️ 已刪除 %s 的「%s」"
	replyNoUserData   = "⚠️ 找不到你的行程資料。"
	replyDateNothing  = "📭 %s 沒有任何行程。"
	replyEventMissing = "❌ 找不到「%s」在 %s"
	replyAIEmpty      = "⚠️ AI 沒有回應任何內容"
	replyAIError      = "❌ AI 發生錯誤：%s"
)

const helpText = `📖 使用說明：
- 新增行程：6月20日 看牙醫
- 查詢今天：今天有什麼行程？
- 查詢日期：我6月20日有什麼行程？
- 刪除單筆：刪除6月20日 看牙醫
- 刪除整天：刪除6月20日全部
- 刪除今天：刪除今天的行程
- 新聞：最新新聞摘要
- 位置：我們的所在地
其他訊息會由 AI 回覆。`

const locationText = `📍 元智大學
320桃園市中壢區遠東路135號
(24.970079, 121.267750)`

// Schedule headers. The today form carries no space after 今天; the date
// form does.
const (
	scheduleTodayHeader = "📅 今天你有以下行程："
	scheduleDateHeader  = "📅 %s 你有以下行程："
)

// formatSchedule renders a non-empty event list under the given header line.
func formatSchedule(header string, events []string) string {
	var b strings.Builder
	b.WriteString(header)
	for _, ev := range events {
		b.WriteString("\n- ")
		b.WriteString(ev)
	}
	return b.String()
}
