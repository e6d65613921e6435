package entity

// Claves de preferencias persistidas.
const (
	SettingIdealProfitGoal = "ideal_profit_goal"
)
