package service

import (
	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type MemberService interface {
	Create(req dto.MemberRequest) (*dto.MemberResponseDTO, error)
	GetByID(id uint) (*dto.MemberResponseDTO, error)
	GetAll() ([]dto.MemberResponseDTO, error)
	Update(id uint, req dto.MemberRequest) (*dto.MemberResponseDTO, error)
	Delete(id uint) error
}

type memberService struct {
	memberRepo repository.MemberRepository
}

func NewMemberService(memberRepo repository.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func (s *memberService) Create(req dto.MemberRequest) (*dto.MemberResponseDTO, error) {
	role := req.Role
	if role == "" {
		role = model.RoleNormal
	}
	member := model.Member{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     role,
		Pole:     req.Pole,
	}
	if err := s.memberRepo.Create(&member); err != nil {
		log.Error().Err(err).Msg("Failed to create member")
		return nil, err
	}
	return memberToDTO(&member), nil
}

func (s *memberService) GetByID(id uint) (*dto.MemberResponseDTO, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return memberToDTO(member), nil
}

func (s *memberService) GetAll() ([]dto.MemberResponseDTO, error) {
	members, err := s.memberRepo.FindAll()
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.MemberResponseDTO, 0, len(members))
	for i := range members {
		dtos = append(dtos, *memberToDTO(&members[i]))
	}
	return dtos, nil
}

func (s *memberService) Update(id uint, req dto.MemberRequest) (*dto.MemberResponseDTO, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	member.FullName = req.FullName
	member.Email = req.Email
	if req.Role != "" {
		member.Role = req.Role
	}
	member.Pole = req.Pole
	if err := s.memberRepo.Update(member); err != nil {
		log.Error().Err(err).Uint("member_id", id).Msg("Failed to update member")
		return nil, err
	}
	return memberToDTO(member), nil
}

func (s *memberService) Delete(id uint) error {
	if _, err := s.memberRepo.FindByID(id); err != nil {
		return err
	}
	return s.memberRepo.Delete(id)
}

func memberToDTO(member *model.Member) *dto.MemberResponseDTO {
	var resp dto.MemberResponseDTO
	copier.Copy(&resp, member)
	return &resp
}
