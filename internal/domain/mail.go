package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const (
	MailTypeWelcome        = "welcome"
	MailTypeResetPassword  = "reset_password"
	MailTypeMonthlySummary = "monthly_summary"
)

type WelcomeMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type MonthlySummaryMailData struct {
	FullName     string `json:"fullName"`
	Month        string `json:"month"`
	ProviderName string `json:"providerName"`
	Count        int    `json:"count"`
	HoursDay     string `json:"hoursDay"`
	HoursNight   string `json:"hoursNight"`
	HoursTotal   string `json:"hoursTotal"`
	TotalValue   string `json:"totalValue"`
	MealsQty     int    `json:"mealsQty"`
	MealCost     string `json:"mealCost"`
}
