package questionbank

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qbank-ai/qbank/internal/config"
	"github.com/qbank-ai/qbank/internal/llm"
)

// User-facing texts shared by every surface.
const (
	MsgEmptyResponse = "AI không trả về nội dung. Vui lòng thử lại."
	MsgProviderTip   = "💡 Mẹo: Thử giảm số lượng câu hỏi hoặc kiểm tra lại kết nối mạng"
	MsgUsageTip      = "💡 Mẹo sử dụng: Bắt đầu với 5-10 câu hỏi để test trước"
	MsgSuccess       = "🎉 Đã tạo thành công ngân hàng câu hỏi!"
	MsgOutOfScope    = "⚠️ " + OutOfScopeReply
	MsgTruncated     = "⚠️ Câu trả lời bị cắt do vượt giới hạn token. Hãy giảm số lượng câu hỏi."
)

// UsageGuide lists the steps for loading the generated bank into the LMS.
var UsageGuide = []string{
	"Tải file Excel về máy",
	"Mở file bằng Microsoft Excel hoặc Google Sheets",
	"Xóa 3 dòng đầu tiên (dòng 1, 2, 3)",
	"Lưu file và tải lên hệ thống LMS của trường",
	"Kiểm tra lại câu hỏi trước khi sử dụng",
}

// ProgressMessage announces a generation of total questions.
func ProgressMessage(total int) string {
	return fmt.Sprintf("🔄 Đang tạo %d câu hỏi...", total)
}

// UserMessage maps any error from the generation flow to the Vietnamese
// message shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return strings.Join(verrs.Messages(), "\n")
	}

	if errors.Is(err, config.ErrNoCredential) {
		return "🔑 Chưa cấu hình API key. Lấy key miễn phí tại " + config.KeyURL
	}

	if errors.Is(err, ErrEmptyResponse) {
		return MsgEmptyResponse
	}

	var authErr *llm.ErrAuth
	if errors.As(err, &authErr) {
		return "🔑 API key không hợp lệ hoặc đã bị thu hồi. Kiểm tra lại tại " + config.KeyURL
	}

	var rateErr *llm.ErrRateLimit
	if errors.As(err, &rateErr) {
		return "⏳ Đã vượt hạn mức gọi API. Vui lòng đợi một lát rồi thử lại.\n" + MsgProviderTip
	}

	return fmt.Sprintf("❌ Lỗi trong quá trình xử lý: %v\n%s", err, MsgProviderTip)
}
