package settings

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/fdciabdul/go-safelink/pkg/safelink/models"
)

// Setting keys in the settings table.
const (
	KeyWaitTime    = "wait_time"
	KeyPageTitle   = "page_title"
	KeyAdsenseCode = "adsense_code"
)

// Reference defaults, applied at seeding and whenever a row is missing.
const (
	DefaultWaitTime  = 10
	DefaultPageTitle = "Please wait, redirecting..."
)

// Settings is the global configuration for the interstitial page. It is
// loaded as an explicit record per request rather than read through ambient
// globals.
type Settings struct {
	WaitTime    int    `json:"wait_time"`
	PageTitle   string `json:"page_title"`
	AdsenseCode string `json:"adsense_code"`
}

// Defaults returns the built-in settings, used when the store is
// unreachable so public redirects keep working.
func Defaults() Settings {
	return Settings{
		WaitTime:  DefaultWaitTime,
		PageTitle: DefaultPageTitle,
	}
}

// Store reads and writes the settings table.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Seed creates any missing settings rows with their defaults. Existing
// values are left untouched.
func (s *Store) Seed() error {
	defaults := map[string]string{
		KeyWaitTime:    strconv.Itoa(DefaultWaitTime),
		KeyPageTitle:   DefaultPageTitle,
		KeyAdsenseCode: "",
	}
	for key, value := range defaults {
		if _, err := s.getOrCreate(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) getOrCreate(key, value string) (string, error) {
	var setting models.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if err == nil {
		return setting.Value, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	setting = models.Setting{Key: key, Value: value}
	if err := s.db.Create(&setting).Error; err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) get(key, fallback string) (string, error) {
	var setting models.Setting
	err := s.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *Store) set(key, value string) error {
	var existing models.Setting
	err := s.db.Where("key = ?", key).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(&models.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	existing.Value = value
	return s.db.Save(&existing).Error
}

// Load reads the current settings, substituting defaults for missing rows.
func (s *Store) Load() (Settings, error) {
	waitStr, err := s.get(KeyWaitTime, strconv.Itoa(DefaultWaitTime))
	if err != nil {
		return Settings{}, err
	}
	wait, err := strconv.Atoi(waitStr)
	if err != nil || wait <= 0 {
		wait = DefaultWaitTime
	}

	title, err := s.get(KeyPageTitle, DefaultPageTitle)
	if err != nil {
		return Settings{}, err
	}
	if title == "" {
		title = DefaultPageTitle
	}

	ad, err := s.get(KeyAdsenseCode, "")
	if err != nil {
		return Settings{}, err
	}

	return Settings{WaitTime: wait, PageTitle: title, AdsenseCode: ad}, nil
}

// Save persists the settings. The ad markup is sanitized through the
// allow-list policy before it is stored; everything outside the policy is
// stripped, never served.
func (s *Store) Save(in Settings) error {
	if in.WaitTime <= 0 {
		in.WaitTime = DefaultWaitTime
	}
	if in.PageTitle == "" {
		in.PageTitle = DefaultPageTitle
	}
	in.AdsenseCode = SanitizeAdMarkup(in.AdsenseCode)

	if err := s.set(KeyWaitTime, strconv.Itoa(in.WaitTime)); err != nil {
		return err
	}
	if err := s.set(KeyPageTitle, in.PageTitle); err != nil {
		return err
	}
	return s.set(KeyAdsenseCode, in.AdsenseCode)
}
