package intake

// DiagnosisQuestions は新規診断フローの固定問診リスト（固定順）
// 各回答はKeyの下にそのまま保存され、最終プロンプトの病歴・身体所見欄に埋め込まれる
var DiagnosisQuestions = []Question{
	{Key: "patient's chief complaint", Label: "Enter patient's chief complaint", Validate: NonEmpty},
	{Key: "patient's location", Label: "Enter patient's pain location (e.g. Middle, right)", Validate: NonEmpty},
	{Key: "patient's radiation", Label: "Is there pain radiation? (Yes/No, and location if Yes)", Validate: YesNoWithDetail},
	{Key: "patient's severity", Label: "Enter pain severity (mild/moderate/severe)", Validate: Severity},
	{Key: "patient's alleviating factors", Label: "Is pain reduced by lying down? (Yes/No)", Validate: YesNo},
	{Key: "patient's pain increase", Label: "Pain increase when looking at (aching/opposite/same) side", Validate: OneOf("aching", "opposite", "same")},
	{Key: "patient's numbness or tingling", Label: "Numbness or tingling in arm or hand? (Yes/No)", Validate: YesNo},
	{Key: "patient's weakness", Label: "Weaker or thinner arm than before? (Yes/No)", Validate: YesNo},
	{Key: "patient's onset of pain", Label: "When did the pain start?", Validate: NonEmpty},
	{Key: "patient's trauma history", Label: "Did pain start within 1 day of trauma? (Yes/No)", Validate: YesNo},
	{Key: "patient's lower back pain", Label: "Pain also in lower back? (Yes/No)", Validate: YesNo},
	{Key: "patient's morning stiffness", Label: "Stiffness in morning? (Yes/No)", Validate: YesNo},
	{Key: "patient's leg symptoms", Label: "Leg weakness or pain? (Yes/No)", Validate: YesNo},
	{Key: "patient's coronary heart disease history", Label: "History of coronary heart disease? (Yes/No)", Validate: YesNo},
	{Key: "patient's weight loss/appetite", Label: "Weight loss or decreased appetite? (Yes/No)", Validate: YesNo},
	{Key: "patient's pregnancy/breastfeeding", Label: "Pregnant or breast feeding? (Yes/No)", Validate: YesNo},
	{Key: "patient's prolonged sitting", Label: "Prolonged sitting during work? (Yes/No)", Validate: YesNo},
	{Key: "patient's fever", Label: "Fever? (Yes/No)", Validate: YesNo},
	{Key: "patient's cancer/steroid history", Label: "History of cancer or steroid use? (Yes/No)", Validate: YesNo},
	{Key: "patient's osteoporosis", Label: "Osteoporosis? (Yes/No)", Validate: YesNo},
	{Key: "patient's age", Label: "Patient's age", Validate: IntInRange(0, 120)},
	{Key: "patient's alcohol/drug use", Label: "Alcoholic or drug abuse? (Yes/No)", Validate: YesNo},
	{Key: "patient's HIV status", Label: "HIV? (Yes/No)", Validate: YesNo},
	{Key: "patient's leg bending difficulty", Label: "Difficult to bend leg? (Yes/No)", Validate: YesNo},
	{Key: "patient's urinary/fecal incontinence", Label: "Urinary or fecal incontinence? (Yes/No)", Validate: YesNo},
	{Key: "patient's shoulder drooping or winging", Label: "Shoulder drooping or winging? (Yes/No)", Validate: YesNo},
	{Key: "patient's upper neck tenderness", Label: "Tenderness at upper neck? (Yes/No)", Validate: YesNo},
	{Key: "patient's arm lift score", Label: "Arm lift against gravity score (0-5)", Validate: IntInRangeInclusive(0, 5)},
	{Key: "patient's Babinski Reflex", Label: "Babinski Reflex (positive/negative)", Validate: OneOf("positive", "negative")},
	{Key: "patient's sensation in arms", Label: "Sensation difference between arms? (Yes/No)", Validate: YesNo},
	{Key: "patient's Spurling test", Label: "Spurling test result (positive/negative)", Validate: OneOf("positive", "negative")},
}

// PatientInfoQuestions はフォローアップフローで収集する患者情報（自由記述）
var PatientInfoQuestions = []Question{
	{Key: "diagnosed patient", Label: "chief_complaint", Validate: NonEmpty},
	{Key: "patient's disability", Label: "Patient's disability (e.g., Activities using arm)", Validate: NonEmpty},
	{Key: "functional evaluation", Label: "Functional evaluation tool (e.g., CUE-T)", Validate: NonEmpty},
	{Key: "newly acquired symptoms", Label: "Newly acquired symptoms", Validate: NonEmpty},
}
