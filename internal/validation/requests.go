package validation

import "github.com/shopspring/decimal"

// Request bodies accepted by the admin API. Money fields use
// decimal.Decimal and are range-checked by the owning service; structural
// checks live in the validate tags.

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CategoryRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Image    string `json:"image" validate:"omitempty,url"`
	IsActive *bool  `json:"is_active"`
}

type QuizRequest struct {
	CategoryID  uint   `json:"category_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=500"`
	Image       string `json:"image" validate:"omitempty,url"`
	EntryCoins  int64  `json:"entry_coins" validate:"gte=0"`
	PrizeCoins  int64  `json:"prize_coins" validate:"gte=0"`
	IsActive    *bool  `json:"is_active"`
}

type QuestionRequest struct {
	QuizID        uint   `json:"quiz_id" validate:"required"`
	Text          string `json:"text" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectOption int    `json:"correct_option" validate:"gte=0,lte=3"`
	Coins         int64  `json:"coins" validate:"gte=0"`
	Image         string `json:"image" validate:"omitempty,url"`
}

// QuestionImportRequest is the bulk payload. Items are validated
// individually so a partial import can report per-index errors.
type QuestionImportRequest struct {
	QuizID    uint             `json:"quiz_id" validate:"required"`
	Questions []QuestionImport `json:"questions" validate:"required,min=1"`
}

type QuestionImport struct {
	Text          string `json:"text" validate:"required"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectOption int    `json:"correct_option" validate:"gte=0,lte=3"`
	Coins         int64  `json:"coins" validate:"gte=0"`
}

type BannerRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Image     string `json:"image" validate:"required"`
	TargetURL string `json:"target_url" validate:"omitempty,url"`
	IsActive  *bool  `json:"is_active"`
}

type UserRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"max=20"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
	Status string `json:"status" validate:"omitempty,oneof=active blocked"`
}

type CoinConversionSettingRequest struct {
	CoinsRequired     int64           `json:"coins_required" validate:"required,gt=0"`
	MainBalanceAmount decimal.Decimal `json:"main_balance_amount"`
	Description       string          `json:"description" validate:"max=500"`
	IsActive          *bool           `json:"is_active"`
}

type WithdrawalSettingRequest struct {
	MinimumAmount decimal.Decimal `json:"minimum_amount"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	FeeFixed      decimal.Decimal `json:"fee_fixed"`
	Description   string          `json:"description" validate:"max=500"`
	IsActive      *bool           `json:"is_active"`
}

type WithdrawalCreateRequest struct {
	UserID         uint            `json:"user_id" validate:"required"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"payment_method" validate:"required"`
	PaymentDetails string          `json:"payment_details" validate:"required"`
}

type WithdrawalStatusRequest struct {
	Status     string `json:"status" validate:"required,oneof=pending approved processing completed rejected"`
	AdminNotes string `json:"admin_notes" validate:"max=500"`
}

type ConvertRequest struct {
	Units int64 `json:"units" validate:"required,gt=0"`
}

type NotificationRequest struct {
	Title   string            `json:"title" validate:"required,max=200"`
	Body    string            `json:"body" validate:"required,max=1000"`
	Image   string            `json:"image" validate:"omitempty,url"`
	Data    map[string]string `json:"data"`
	UserIDs []uint            `json:"user_ids"`
}

type DeviceTokenRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,oneof=android ios web"`
}

type ReorderRequest struct {
	Order []uint `json:"order" validate:"required,min=1"`
}
