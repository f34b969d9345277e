// Package collectionsvc - service quy tắc hoàn thành (TaskRule) và parse chính sách quorum.
package collectionsvc

import (
	"context"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
	basesvc "github.com/ccnuzw/CTBMS-sub006/internal/api/base/service"
	"github.com/ccnuzw/CTBMS-sub006/internal/common"
	"github.com/ccnuzw/CTBMS-sub006/internal/global"
)

// QuorumKind phân loại cách xác định ngưỡng quorum
type QuorumKind int

const (
	QuorumDefault QuorumKind = iota // Không khai báo — ceil(total/2)
	QuorumCount                     // Số lượng tuyệt đối
	QuorumRatio                     // Tỷ lệ trên sĩ số nhóm, làm tròn lên
)

// QuorumPolicy là dạng có kiểu của payload duePolicy, parse một lần tại biên.
// Logic phía sau chỉ làm việc với struct này, không đụng vào map thô.
type QuorumPolicy struct {
	Kind  QuorumKind
	Count int
	Ratio float64
}

// ParseQuorumPolicy đọc payload duePolicy động thành QuorumPolicy.
// Ưu tiên quorumCount (số nguyên dương), rồi quorumRatio (0 < r <= 1);
// payload thiếu hoặc không hợp lệ rơi về mặc định.
func ParseQuorumPolicy(payload map[string]interface{}) QuorumPolicy {
	if payload == nil {
		return QuorumPolicy{Kind: QuorumDefault}
	}

	if raw, ok := payload["quorumCount"]; ok {
		if n, ok := toInt(raw); ok && n > 0 {
			return QuorumPolicy{Kind: QuorumCount, Count: n}
		}
	}

	if raw, ok := payload["quorumRatio"]; ok {
		if r, ok := toFloat(raw); ok && r > 0 && r <= 1 {
			return QuorumPolicy{Kind: QuorumRatio, Ratio: r}
		}
	}

	return QuorumPolicy{Kind: QuorumDefault}
}

// Required tính số nhiệm vụ hoàn thành tối thiểu để đóng nhóm sĩ số total.
// Kết quả luôn nằm trong [1, total] khi total > 0.
func (p QuorumPolicy) Required(total int) int {
	if total <= 0 {
		return 0
	}

	var required int
	switch p.Kind {
	case QuorumCount:
		required = p.Count
	case QuorumRatio:
		required = int(math.Ceil(p.Ratio * float64(total)))
	default:
		required = (total + 1) / 2 // ceil(total/2)
	}

	if required < 1 {
		required = 1
	}
	if required > total {
		required = total
	}
	return required
}

// toInt đọc một giá trị số nguyên từ payload BSON/JSON (kiểu số không cố định)
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

// toFloat đọc một giá trị số thực từ payload BSON/JSON
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// TaskRuleService là cấu trúc chứa các phương thức liên quan đến quy tắc hoàn thành
type TaskRuleService struct {
	*basesvc.BaseServiceMongoImpl[models.TaskRule]
}

// NewTaskRuleService tạo mới TaskRuleService
func NewTaskRuleService() (*TaskRuleService, error) {
	ruleCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TaskRules)
	if !exist {
		return nil, fmt.Errorf("failed to get task_rules collection: %v", common.ErrNotFound)
	}

	return &TaskRuleService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.TaskRule](ruleCollection),
	}, nil
}

// FindActiveById tìm quy tắc đang hiệu lực theo ID.
// Quy tắc không tồn tại hoặc đã tắt trả về ErrNotFound.
func (s *TaskRuleService) FindActiveById(ctx context.Context, id primitive.ObjectID) (models.TaskRule, error) {
	rule, err := s.FindOneById(ctx, id)
	if err != nil {
		return models.TaskRule{}, err
	}
	if !rule.IsActive {
		return models.TaskRule{}, common.ErrNotFound
	}
	return rule, nil
}
