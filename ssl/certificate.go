package ssl

import (
	"context"
	"fmt"

	"github.com/tc-eo-ssl/sdk/internal/client"
	"github.com/tc-eo-ssl/sdk/ssl/types"
)

// UploadCertificate uploads a PEM encoded certificate and private key for
// use with EdgeOne.
//
// It returns the id the provider assigned to the certificate.
func (c *Client) UploadCertificate(ctx context.Context, publicKey, privateKey string) (certificateID string, err error) {
	params := &types.UploadCertificateParams{
		CertificatePublicKey:  publicKey,
		CertificatePrivateKey: privateKey,
		CertificateUse:        types.ResourceTypeTEO,
	}

	resp, err := client.Call[types.UploadCertificateResponse](ctx, c.client, "UploadCertificate", Version, params)
	if err != nil {
		return "", fmt.Errorf("unable to upload certificate: %w", err)
	}

	return resp.CertificateID, nil
}

// DeployCertificateInstance deploys the certificate to the given EdgeOne
// instances (domains).
func (c *Client) DeployCertificateInstance(ctx context.Context, certificateID string, instanceIDs []string) (*types.DeployCertificateInstanceResponse, error) {
	params := &types.DeployCertificateInstanceParams{
		CertificateID:  certificateID,
		InstanceIDList: instanceIDs,
		ResourceType:   types.ResourceTypeTEO,
	}

	resp, err := client.Call[types.DeployCertificateInstanceResponse](ctx, c.client, "DeployCertificateInstance", Version, params)
	if err != nil {
		return nil, fmt.Errorf("unable to deploy certificate %s: %w", certificateID, err)
	}

	return resp, nil
}

// UploadAndDeploy uploads a certificate and then deploys it to instanceIDs.
//
// The two calls run strictly in order; if the upload fails the deploy is
// never attempted. If the deploy fails the returned result still carries the
// id of the uploaded certificate.
func (c *Client) UploadAndDeploy(ctx context.Context, publicKey, privateKey string, instanceIDs []string) (*types.DeployResult, error) {
	// Check the deploy parameters up front so we don't upload a certificate we can't deploy
	if err := types.ValidateInstanceIDs(instanceIDs); err != nil {
		return nil, fmt.Errorf("unable to deploy certificate: %w", err)
	}

	certificateID, err := c.UploadCertificate(ctx, publicKey, privateKey)
	if err != nil {
		return nil, err
	}
	result := &types.DeployResult{CertificateID: certificateID}

	deployed, err := c.DeployCertificateInstance(ctx, certificateID, instanceIDs)
	if err != nil {
		return result, err
	}
	result.DeployRecordID = deployed.DeployRecordID
	result.DeployStatus = deployed.DeployStatus

	return result, nil
}
