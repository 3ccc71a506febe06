package app

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	log "github.com/sirupsen/logrus"
)

func accessSecretVersion(client *secretmanager.Client, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", Config.GoogleSecretManager.ProjectId, name),
	}

	result, err := client.AccessSecretVersion(context.Background(), req)
	if err != nil {
		return "", err
	}

	return string(result.Payload.Data), nil
}

func readKeysFromGSM() {
	if !Config.GoogleSecretManager.Enabled {
		log.Debug("[GSM] Google Secret Manager is disabled")
		return
	}

	if Config.GoogleSecretManager.ProjectId == "" {
		log.Fatalf("[GSM] ProjectId is empty")
	}

	ctx := context.Background()
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		log.Fatalf("[GSM] Failed to create secretmanager client: %v", err)
	}
	defer client.Close()

	if Config.Solana.PrivateKey == "" {
		if Config.GoogleSecretManager.SolanaSecretName == "" {
			log.Fatalf("[GSM] Solana secret name is empty")
		}

		log.Debug("[GSM] Reading solana private key")
		Config.Solana.PrivateKey, err = accessSecretVersion(client, Config.GoogleSecretManager.SolanaSecretName)
		if err != nil {
			log.Fatalf("[GSM] Failed to access solana private key: %v", err)
		}
		log.Info("[GSM] Successfully read solana private key")
	}
}
