package types

import (
	"errors"
	"strings"
)

// ResourceTypeTEO is the resource type and certificate use for EdgeOne.
const ResourceTypeTEO = "teo"

// UploadCertificateParams is the parameters for uploading a certificate.
type UploadCertificateParams struct {
	CertificatePublicKey  string `json:"CertificatePublicKey"`                    // PEM encoded certificate chain
	CertificatePrivateKey string `json:"CertificatePrivateKey" sensitive:"true"` // PEM encoded private key
	CertificateUse        string `json:"CertificateUse"`
}

func (p *UploadCertificateParams) Validate() error {
	switch {
	case strings.TrimSpace(p.CertificatePublicKey) == "":
		return errors.New("certificate public key must be provided")
	case strings.TrimSpace(p.CertificatePrivateKey) == "":
		return errors.New("certificate private key must be provided")
	}
	return nil
}

// UploadCertificateResponse is the response from uploading a certificate.
type UploadCertificateResponse struct {
	CertificateID string `json:"CertificateId"`
}

func (r *UploadCertificateResponse) Validate() error {
	if r.CertificateID == "" {
		return errors.New("certificate id missing from response")
	}
	return nil
}

// DeployCertificateInstanceParams is the parameters for deploying a certificate
// to a set of instances.
type DeployCertificateInstanceParams struct {
	CertificateID  string   `json:"CertificateId"`
	InstanceIDList []string `json:"InstanceIdList"`
	ResourceType   string   `json:"ResourceType"`
}

func (p *DeployCertificateInstanceParams) Validate() error {
	if p.CertificateID == "" {
		return errors.New("certificate id must be provided")
	}
	return ValidateInstanceIDs(p.InstanceIDList)
}

// ValidateInstanceIDs checks that there is at least one instance to deploy to
// and that none of them is blank.
func ValidateInstanceIDs(instanceIDs []string) error {
	if len(instanceIDs) == 0 {
		return errors.New("at least one instance id must be provided")
	}
	for _, id := range instanceIDs {
		if strings.TrimSpace(id) == "" {
			return errors.New("instance ids must not be empty")
		}
	}
	return nil
}

// DeployCertificateInstanceResponse is the response from deploying a certificate.
type DeployCertificateInstanceResponse struct {
	DeployRecordID int64 `json:"DeployRecordId"`
	DeployStatus   int32 `json:"DeployStatus"`
}

// DeployResult is the outcome of uploading a certificate and deploying it.
type DeployResult struct {
	CertificateID  string
	DeployRecordID int64
	DeployStatus   int32
}
