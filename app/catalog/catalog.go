// Package catalog holds the fixed option lists vendors choose from when
// registering a plan and couples filter by when searching.
package catalog

var Scales = []string{
	"ふたりのみ",
	"〜10名（家族婚）",
	"10〜30名（少人数）",
	"30〜60名（中規模）",
	"60〜100名（大規模）",
	"100名以上（大型）",
}

var WorldViews = []string{
	"フラワー",
	"バルーン",
	"キャンドル",
	"フェアリーライト",
	"アンティーク",
	"ウッド",
	"シンプル",
	"ロマンチック",
	"モダン",
	"クラシック",
	"和モダン",
	"韓国風",
	"海",
	"森",
	"街中",
	"スタジオ",
	"レンガ",
	"花畑",
	"夜景",
	"夕日",
	"高級ホテル",
	"チャペル",
	"神前式",
	"ガーデン",
	"洋館",
	"古民家",
	"レストラン",
	"邸宅",
	"リゾート",
	"フォトスタジオ",
}

var Purposes = []string{
	"前撮り",
	"後撮り",
	"フォトウェディング",
	"結婚式（挙式）",
	"披露宴",
	"家族婚",
}

var Prefectures = []string{
	"北海道", "青森", "岩手", "宮城", "秋田", "山形", "福島",
	"茨城", "栃木", "群馬", "埼玉", "千葉", "東京", "神奈川",
	"新潟", "富山", "石川", "福井", "山梨", "長野", "岐阜",
	"静岡", "愛知", "三重", "滋賀", "京都", "大阪", "兵庫",
	"奈良", "和歌山", "鳥取", "島根", "岡山", "広島", "山口",
	"徳島", "香川", "愛媛", "高知", "福岡", "佐賀", "長崎",
	"熊本", "大分", "宮崎", "鹿児島", "沖縄",
}

type Region struct {
	Name        string
	Prefectures []string
}

// Regions groups prefectures for the location picker, in display order.
var Regions = []Region{
	{Name: "北海道", Prefectures: []string{"北海道"}},
	{Name: "東北", Prefectures: []string{"青森", "岩手", "宮城", "秋田", "山形", "福島"}},
	{Name: "関東", Prefectures: []string{"東京", "神奈川", "千葉", "埼玉", "茨城", "栃木", "群馬"}},
	{Name: "中部", Prefectures: []string{"愛知", "静岡", "岐阜", "三重", "新潟", "長野", "山梨", "富山", "石川", "福井"}},
	{Name: "関西", Prefectures: []string{"大阪", "京都", "兵庫", "奈良", "滋賀", "和歌山"}},
	{Name: "中国", Prefectures: []string{"広島", "岡山", "山口", "鳥取", "島根"}},
	{Name: "四国", Prefectures: []string{"香川", "愛媛", "徳島", "高知"}},
	{Name: "九州", Prefectures: []string{"福岡", "佐賀", "長崎", "熊本", "大分", "宮崎", "鹿児島"}},
	{Name: "沖縄", Prefectures: []string{"沖縄"}},
}

func IsScale(v string) bool      { return contains(Scales, v) }
func IsWorldView(v string) bool  { return contains(WorldViews, v) }
func IsPurpose(v string) bool    { return contains(Purposes, v) }
func IsPrefecture(v string) bool { return contains(Prefectures, v) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
