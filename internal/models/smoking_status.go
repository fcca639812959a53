package models

const CigaretteTypeOther = "other"

var SmokingFrequencies = []string{"daily", "weekly", "occasionally"}

var CigaretteTypes = []string{
	"Thuốc lá 555",
	"Thuốc lá Richmond",
	"Thuốc lá Esse",
	"Thuốc lá Craven",
	"Thuốc lá Marlboro",
	"Thuốc lá Camel",
	"Thuốc lá SG bạc",
	"Thuốc lá Jet",
	"Thuốc lá Thăng Long",
	"Thuốc lá Hero",
	CigaretteTypeOther,
}

type SmokingStatus struct {
	CigarettesPerDay    int              `json:"cigarettesPerDay"`
	CostPerPack         float64          `json:"costPerPack"`
	SmokingFrequency    string           `json:"smokingFrequency"`
	HealthStatus        string           `json:"healthStatus"`
	CigaretteType       string           `json:"cigaretteType"`
	CustomCigaretteType string           `json:"customCigaretteType"`
	QuitReason          string           `json:"quitReason"`
	DailyLog            DailyLogSnapshot `json:"dailyLog"`
}

// DailyLogSnapshot is today's entry as embedded in the smoking status.
type DailyLogSnapshot struct {
	Cigarettes int      `json:"cigarettes"`
	Feeling    string   `json:"feeling"`
	Date       string   `json:"date,omitempty"`
	SavedMoney *float64 `json:"savedMoney,omitempty"`
}

func (status SmokingStatus) CigaretteTypeLabel() string {
	if status.CigaretteType == CigaretteTypeOther && status.CustomCigaretteType != "" {
		return status.CustomCigaretteType
	}
	return status.CigaretteType
}
