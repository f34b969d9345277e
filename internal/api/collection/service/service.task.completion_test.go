// Package collectionsvc - Test quyết định đóng nhóm theo chính sách hoàn thành.
package collectionsvc

import (
	"testing"

	models "github.com/ccnuzw/CTBMS-sub006/internal/api/collection/models"
)

func TestDecideGroupCompletion_Each(t *testing.T) {
	// EACH: không bao giờ cascade, kể cả khi tất cả đã xong
	for completed := 0; completed <= 3; completed++ {
		d := DecideGroupCompletion(models.CompletionPolicyEach, QuorumPolicy{}, 3, completed)
		if d.CloseGroup || d.ForceRemainder {
			t.Errorf("EACH với %d/3 hoàn thành không được cascade, được %+v", completed, d)
		}
	}
}

func TestDecideGroupCompletion_AnyOne(t *testing.T) {
	d := DecideGroupCompletion(models.CompletionPolicyAnyOne, QuorumPolicy{}, 3, 0)
	if d.CloseGroup {
		t.Errorf("ANY_ONE với 0 hoàn thành chưa được đóng nhóm")
	}

	d = DecideGroupCompletion(models.CompletionPolicyAnyOne, QuorumPolicy{}, 3, 1)
	if !d.CloseGroup || !d.ForceRemainder {
		t.Errorf("ANY_ONE với 1/3 phải đóng nhóm và cưỡng bức phần còn lại, được %+v", d)
	}

	// Tất cả đã xong thì không còn gì để cưỡng bức
	d = DecideGroupCompletion(models.CompletionPolicyAnyOne, QuorumPolicy{}, 3, 3)
	if !d.CloseGroup || d.ForceRemainder {
		t.Errorf("ANY_ONE với 3/3 phải đóng nhóm, không cưỡng bức, được %+v", d)
	}
}

// Thuộc tính 2-trên-3: đủ 2 hoàn thành là đóng nhóm và cưỡng bức nhiệm vụ thứ ba,
// bất kể thứ tự hoàn thành
func TestDecideGroupCompletion_QuorumTwoOfThree(t *testing.T) {
	quorum := QuorumPolicy{Kind: QuorumCount, Count: 2}

	d := DecideGroupCompletion(models.CompletionPolicyQuorum, quorum, 3, 1)
	if d.CloseGroup {
		t.Errorf("QUORUM 2/3 với 1 hoàn thành chưa được đóng nhóm")
	}

	d = DecideGroupCompletion(models.CompletionPolicyQuorum, quorum, 3, 2)
	if !d.CloseGroup || !d.ForceRemainder {
		t.Errorf("QUORUM 2/3 với 2 hoàn thành phải đóng nhóm và cưỡng bức, được %+v", d)
	}
}

func TestDecideGroupCompletion_QuorumDefaultCeilHalf(t *testing.T) {
	// Không khai báo ngưỡng → ceil(5/2) = 3
	d := DecideGroupCompletion(models.CompletionPolicyQuorum, QuorumPolicy{}, 5, 2)
	if d.CloseGroup {
		t.Errorf("QUORUM mặc định trên nhóm 5 cần 3 hoàn thành, 2 chưa đủ")
	}
	d = DecideGroupCompletion(models.CompletionPolicyQuorum, QuorumPolicy{}, 5, 3)
	if !d.CloseGroup {
		t.Errorf("QUORUM mặc định trên nhóm 5 phải đóng khi đủ 3 hoàn thành")
	}
}

func TestDecideGroupCompletion_All(t *testing.T) {
	d := DecideGroupCompletion(models.CompletionPolicyAll, QuorumPolicy{}, 3, 2)
	if d.CloseGroup {
		t.Errorf("ALL với 2/3 chưa được đóng nhóm")
	}

	d = DecideGroupCompletion(models.CompletionPolicyAll, QuorumPolicy{}, 3, 3)
	if !d.CloseGroup {
		t.Errorf("ALL với 3/3 phải đóng nhóm")
	}
	if d.ForceRemainder {
		t.Errorf("ALL không bao giờ cưỡng bức hoàn thành")
	}
}

func TestDecideGroupCompletion_EmptyOrUnknown(t *testing.T) {
	if d := DecideGroupCompletion(models.CompletionPolicyAnyOne, QuorumPolicy{}, 0, 0); d.CloseGroup {
		t.Errorf("nhóm rỗng không được đóng")
	}
	if d := DecideGroupCompletion("SOMETHING_ELSE", QuorumPolicy{}, 3, 3); d.CloseGroup {
		t.Errorf("chính sách lạ phải coi như EACH, không cascade")
	}
}
