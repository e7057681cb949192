package repository

import (
	"github.com/capisen/backoffice/internal/model"
	"gorm.io/gorm"
)

type TemplateRepository interface {
	Create(template *model.MailTemplate) error
	FindByID(id uint) (*model.MailTemplate, error)
	FindAll() ([]model.MailTemplate, error)
	Update(template *model.MailTemplate) error
	ReplaceMentionedContacts(template *model.MailTemplate, contacts []model.Contact) error
	Delete(id uint) error
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(template *model.MailTemplate) error {
	return r.db.Create(template).Error
}

func (r *templateRepository) FindByID(id uint) (*model.MailTemplate, error) {
	var template model.MailTemplate
	if err := r.db.Preload("MentionedContacts").First(&template, id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindAll() ([]model.MailTemplate, error) {
	var templates []model.MailTemplate
	err := r.db.Preload("MentionedContacts").Order("title ASC").Find(&templates).Error
	return templates, err
}

func (r *templateRepository) Update(template *model.MailTemplate) error {
	return r.db.Save(template).Error
}

func (r *templateRepository) ReplaceMentionedContacts(template *model.MailTemplate, contacts []model.Contact) error {
	return r.db.Model(template).Association("MentionedContacts").Replace(contacts)
}

func (r *templateRepository) Delete(id uint) error {
	return r.db.Delete(&model.MailTemplate{}, id).Error
}
