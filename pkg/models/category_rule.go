package models

import (
	"strings"

	"gorm.io/gorm"
)

// CategoryRule assigns a category to scanned receipts whose merchant
// name matches the glob pattern in Match. Rules with a higher priority
// are evaluated first.
type CategoryRule struct {
	DefaultModel
	OwnerID  string `json:"ownerId" gorm:"index" example:"user_2abc3def"`
	Owner    User   `json:"-"`
	Priority uint   `json:"priority" example:"3"`
	Match    string `json:"match" example:"*coffee*"`
	Category string `json:"category" example:"food"`
}

func (r *CategoryRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	r.Category = strings.TrimSpace(r.Category)

	if r.Match == "" {
		return ErrMatchRequired
	}

	if r.Category == "" {
		return ErrCategoryRequired
	}

	return nil
}

// CategoryRules returns all rules of the owner, highest priority first.
func CategoryRules(db *gorm.DB, ownerID string) ([]CategoryRule, error) {
	var rules []CategoryRule
	err := db.
		Where(&CategoryRule{OwnerID: ownerID}).
		Order("priority DESC, created_at ASC").
		Find(&rules).Error

	return rules, err
}
