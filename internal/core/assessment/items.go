package assessment

// NumItems はCUE-T評価の固定項目数
const NumItems = 17

// ItemNames はCUE-T評価項目の固定名（固定順）
// 動的に項目を検出することはなく、この順序がCSV列・スコア列の整列契約になる
var ItemNames = [NumItems]string{
	"Reach fwd",
	"Reach Up",
	"Reach Down",
	"Lift Up",
	"Push Down",
	"Wrist Up",
	"Acquire - Release",
	"Grasp Dynamometer",
	"Lateral Pinch",
	"Pull Weight",
	"Push Weight",
	"Container",
	"Pinch Die",
	"Pencil",
	"Manipulate (chip)",
	"Push Index",
	"Push Thumb",
}
