package push

import (
	"encoding/json"
	"fmt"

	"prompt_market/internal/pkg/config"

	"github.com/aliyun/alibaba-cloud-sdk-go/sdk/requests"
	"github.com/aliyun/alibaba-cloud-sdk-go/services/push"
)

// PushService delivers app notifications, e.g. purchase confirmations.
type PushService interface {
	PushToDevice(deviceID string, title, body string, extParameters map[string]string) error
	PushToAccount(accountID string, title, body string, extParameters map[string]string) error
	PushToAll(title, body string, extParameters map[string]string) error
}

type AliyunPushService struct {
	client *push.Client
	appKey int64
}

func NewAliyunPushService() (*AliyunPushService, error) {
	cfg := config.GlobalConfig.Push

	if cfg.AccessKeyID == "" || cfg.AppKey == 0 {
		return nil, fmt.Errorf("push config is missing")
	}

	client, err := push.NewClientWithAccessKey(
		cfg.RegionID,
		cfg.AccessKeyID,
		cfg.AccessKeySecret,
	)
	if err != nil {
		return nil, err
	}

	return &AliyunPushService{
		client: client,
		appKey: cfg.AppKey,
	}, nil
}

func (s *AliyunPushService) PushToDevice(deviceID string, title, body string, extParameters map[string]string) error {
	return s.sendPush("DEVICE", deviceID, title, body, extParameters)
}

func (s *AliyunPushService) PushToAccount(accountID string, title, body string, extParameters map[string]string) error {
	return s.sendPush("ACCOUNT", accountID, title, body, extParameters)
}

func (s *AliyunPushService) PushToAll(title, body string, extParameters map[string]string) error {
	return s.sendPush("ALL", "ALL", title, body, extParameters)
}

func (s *AliyunPushService) sendPush(target, targetValue, title, body string, extParameters map[string]string) error {
	request := push.CreatePushRequest()
	request.AppKey = requests.NewInteger(int(s.appKey))
	request.Target = target
	request.TargetValue = targetValue
	request.Title = title
	request.Body = body
	request.DeviceType = "ALL"
	request.PushType = "NOTICE"

	if len(extParameters) > 0 {
		extJSON, _ := json.Marshal(extParameters)
		request.AndroidExtParameters = string(extJSON)
		request.IOSExtParameters = string(extJSON)
	}

	_, err := s.client.Push(request)
	return err
}

// GlobalPushService instance; nil when push is not configured.
var GlobalPushService PushService

func InitPushService() error {
	service, err := NewAliyunPushService()
	if err != nil {
		return err
	}
	GlobalPushService = service
	return nil
}
