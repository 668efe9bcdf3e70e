// 指示: miu200521358
package rinteractor

import "github.com/miu200521358/mu_rig2scene/pkg/usecase/port/rhost"

// FindNodeByName はルート配下を探索し、名前が一致する最初のノードを返す。
// 見つからない場合は nil。
//
// 探索順は元リグ取込系との互換仕様: 各子ノードについて、その子が孫を持つ
// 場合は配下の再帰探索を先に行い、再帰探索が空振りしたときに初めて子自身の
// 名前を比較する。このため、別名の枝の奥にある深い一致が、浅い位置の一致
// より先に採用されることがある。標準的な前順探索へ「修正」しないこと。
// 名前比較は大文字小文字を区別する完全一致。ルート自身の名前は比較しない。
func FindNodeByName(root rhost.INode, name string) rhost.INode {
	if root == nil {
		return nil
	}
	for _, child := range root.Children() {
		if len(child.Children()) > 0 {
			if found := FindNodeByName(child, name); found != nil {
				return found
			}
		}
		if child.Name() == name {
			return child
		}
	}
	return nil
}
