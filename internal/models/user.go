package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"not null" json:"nome"`
	Sobrenome string    `gorm:"not null" json:"sobrenome"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	SenhaHash string    `gorm:"not null" json:"-"`
	Cargo     string    `gorm:"not null;default:client" json:"cargo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Telefone     *string `json:"telefone"`
	Departamento *string `json:"departamento"`
	Bio          *string `json:"bio"`
	AvatarBase64 *string `json:"avatar_base64"`
	Idade        *int    `json:"idade"`
	Cep          *string `json:"cep"`
	Localidade   *string `json:"localidade"`
	UF           *string `json:"uf"`
	Bairro       *string `json:"bairro"`
	Logradouro   *string `json:"logradouro"`
	Numero       *string `json:"numero"`

	// Relationships
	ManagedProjects []Project       `gorm:"foreignKey:ManagerID" json:"-"`
	Memberships     []ProjectMember `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
