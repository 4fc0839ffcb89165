package session

import (
	"fmt"
	"sort"
	"strings"
)

// contextAnswer は検索パイプラインの結果マップからひとつの文書の回答を取り出す
// 複数クエリの場合はクエリ文字列順に連結してプロンプトを決定的に保つ
func contextAnswer(results map[int]map[string]string, docIndex int) string {
	docResults, ok := results[docIndex]
	if !ok {
		return ""
	}

	queries := make([]string, 0, len(docResults))
	for query := range docResults {
		queries = append(queries, query)
	}
	sort.Strings(queries)

	parts := make([]string, 0, len(queries))
	for _, query := range queries {
		parts = append(parts, docResults[query])
	}
	return strings.Join(parts, "\n")
}

// BuildDiagnosisPrompt は新規診断フローの最終プロンプトを構築する
// 病歴・身体所見の回答と、ペインガイドから合成したコンテキストを埋め込む
func BuildDiagnosisPrompt(answers map[string]string, contexts map[int]map[string]string) string {
	var sb strings.Builder

	sb.WriteString("You are a renowned rehabilitation medicine specialist. Check the patient's condition and suggest suspected diagnoses, further evaluations, and red flags based on the condition. Reference the provided pain guides during this process.\n\n")

	sb.WriteString("1. Check the patient's condition:\n")
	sb.WriteString(fmt.Sprintf("   a) Chief complaint: %s\n", answers["patient's chief complaint"]))
	sb.WriteString("   b) History taking:\n")
	writeHistorySection(&sb, answers)
	sb.WriteString("   c) Physical examinations:\n")
	writePhysicalExamSection(&sb, answers)
	sb.WriteString("\n")

	sb.WriteString("2. Suggest diagnoses, further evaluations, and search for red flags:\n")
	sb.WriteString("   a) Suggest maximum 3 suspected diagnoses based on history and physical examinations.\n")
	sb.WriteString("      Use the <DIFFERENTIAL DIAGNOSIS> section of the pain guide below. If no match, suggest \"unspecified neck pain\".\n")
	sb.WriteString("   b) Suggest further examinations based on symptoms, suspected diagnoses, and the <Imaging and Other Diagnostic Tests> section in the second pain guide below.\n")
	sb.WriteString("   c) Check for red flags:\n")
	sb.WriteString("      - If present: List red flags from the following list and recommend hospital visit:\n")
	for _, flag := range redFlags {
		sb.WriteString(fmt.Sprintf("        * %s\n", flag))
	}
	sb.WriteString("      - If absent: Suggest rehabilitation exercises from the PTX guide below where the anatomical structure in the chief complaint is included in <Client's aim>.\n\n")

	sb.WriteString("Important notes:\n")
	sb.WriteString("- Maintain patient confidentiality at all times.\n")
	sb.WriteString("- Provide your output in a structured format as shown in the examples below.\n\n")

	sb.WriteString("Pain guide:\n")
	sb.WriteString(contextAnswer(contexts, 0))
	sb.WriteString("\n\nPain guide 2:\n")
	sb.WriteString(contextAnswer(contexts, 1))
	sb.WriteString("\n\nPain guide 3:\n")
	sb.WriteString(contextAnswer(contexts, 2))
	sb.WriteString("\n\nPTX guide:\n")
	sb.WriteString(contextAnswer(contexts, 3))
	sb.WriteString("\n\n")

	sb.WriteString(diagnosisExampleOutputs)
	sb.WriteString("\nPlease provide your assessment and recommendations based on the given information.\n")

	return sb.String()
}

// redFlags は診断フローで確認する危険徴候の固定リスト
var redFlags = []string{
	"Fever",
	"Unexplained weight loss",
	"History of cancer",
	"History of violent trauma",
	"History of steroid use",
	"Osteoporosis",
	"Aged younger than 20 years or older than 50 years",
	"Failure to improve with treatment",
	"History of alcohol or drug abuse",
	"HIV",
	"Lower extremity spasticity",
	"Loss of bowel or bladder function",
}

// historyItems は病歴欄の表示順とキーの対応
var historyItems = []struct {
	label string
	key   string
}{
	{"Location (e.g. upper-lower, left-right)", "patient's location"},
	{"Radiation (include radiating location)", "patient's radiation"},
	{"Severity (severe/moderate/mild)", "patient's severity"},
	{"Pain reduced by recumbency (lying down)", "patient's alleviating factors"},
	{"More painful when looking at aching side vs opposite side vs same", "patient's pain increase"},
	{"Numbness or tingling in arm or hand", "patient's numbness or tingling"},
	{"Weaker or thinner arm than before", "patient's weakness"},
	{"When did the pain start", "patient's onset of pain"},
	{"Did the pain start within 1 day of a trauma (e.g. traffic accident, lifting)", "patient's trauma history"},
	{"Pain also in lower back", "patient's lower back pain"},
	{"Stiffness in morning", "patient's morning stiffness"},
	{"Leg weakness or pain", "patient's leg symptoms"},
	{"History of coronary heart disease", "patient's coronary heart disease history"},
	{"Weight loss or decreased appetite", "patient's weight loss/appetite"},
	{"Pregnant or breast feeding", "patient's pregnancy/breastfeeding"},
	{"Prolonged sitting during work", "patient's prolonged sitting"},
	{"Fever", "patient's fever"},
	{"History of cancer or steroid use", "patient's cancer/steroid history"},
	{"Osteoporosis", "patient's osteoporosis"},
	{"Age", "patient's age"},
	{"Alcoholic or drug abuse", "patient's alcohol/drug use"},
	{"HIV", "patient's HIV status"},
	{"Difficult to bend leg (leg spasticity)", "patient's leg bending difficulty"},
	{"Urinary or fecal incontinence", "patient's urinary/fecal incontinence"},
}

// physicalExamItems は身体所見欄の表示順とキーの対応
var physicalExamItems = []struct {
	label string
	key   string
}{
	{"Shoulder drooping or winging", "patient's shoulder drooping or winging"},
	{"Tenderness at upper neck", "patient's upper neck tenderness"},
	{"Arm lift against gravity score (0-5)", "patient's arm lift score"},
	{"Babinski Reflex (positive/negative)", "patient's Babinski Reflex"},
	{"Sensation difference between arms", "patient's sensation in arms"},
	{"Spurling test result (positive/negative)", "patient's Spurling test"},
}

func writeHistorySection(sb *strings.Builder, answers map[string]string) {
	for _, item := range historyItems {
		sb.WriteString(fmt.Sprintf("      - %s: %s\n", item.label, answers[item.key]))
	}
}

func writePhysicalExamSection(sb *strings.Builder, answers map[string]string) {
	for _, item := range physicalExamItems {
		sb.WriteString(fmt.Sprintf("      - %s: %s\n", item.label, answers[item.key]))
	}
}

const diagnosisExampleOutputs = `>>Example1<<:
suspected diagnoses:
1. Infection (evidence: pain not alleviated by lying down)
2. Cervical radiculopathy (evidence: numbness and tingling, shoulder drooping, arm lift score <=3, positive Spurling test)
3. Brachial plexopathy (evidence: numbness and tingling, upper extremity weakness, shoulder and upper extremity pain)

further examinations: MRI, Electromyography

finding red flags: Red flags present: "Fever". Urgent hospital visit recommended.

>>Example2<<:
suspected diagnoses:
1. Muscle strain (evidence: pain increased when turning toward opposite side)
2. Ankylosing spondylitis (evidence: concurrent lower back pain)

further examinations: Plain Radiography

finding red flags: Red flags absent.
Recommended rehabilitation exercise: "Lifting head off two pillows" - Lie on two pillows, slide your head up the pillow, and nod your head. Gently lift your head off the pillow. Perform slowly and controlled, avoiding pain or other symptoms.

>>Example3<<:
suspected diagnoses:
1. Myelopathy (evidence: Babinski reflex positive, leg weakness or pain, numbness or tingling in arm or hand)
2. Radiculopathy (evidence: more painful when looking at the aching side, numbness or tingling in arm or hand, trauma)
3. Cancer (evidence: weakness or pain)

further examinations: Computed tomography, Electromyography

finding red flags: Red flags present: "Osteoporosis". Urgent hospital visit recommended.
`

// BuildRehabilitationPrompt はフォローアップフローの最終プロンプトを構築する
// 低下項目・履歴不足項目・患者情報と、各ガイドから合成したコンテキストを埋め込む
func BuildRehabilitationPrompt(answers map[string]string, decreased, noData []string, contexts map[int]map[string]string) string {
	var sb strings.Builder

	sb.WriteString("You are a renowned rehabilitation medicine specialist. Evaluate physical functions related to patient's diagnosis and disabilities. Educate the patient with proper rehabilitation exercise with regards to functions declining over time. Check whether there are recently acquired symptoms and check whether those symptoms indicate complications related to patient's diagnosis.\n\n")

	sb.WriteString("Functional evaluation and exercise education consists of 3 steps. Answer should be provided in 3 steps.\n\n")
	sb.WriteString("- $1 Based on the patient's disability, suggest which functional evaluation is needed for the patient.\n\n")
	sb.WriteString("- $2 Suggest body parts used during each item in ITEMs with <INTENT> section in the CUE T Manual.\n\n")
	sb.WriteString("- $3 Suggest exercises in PTX where anatomical structures used during each item in ITEMs.\n\n")
	sb.WriteString("- $4 Get the diagnosed patient as diagnosis. Check if diagnosis is \"Stroke\" or \"Spinal Cord Injury\".\n")
	sb.WriteString("     Get the newly acquired symptoms as \"symptoms\".\n")
	sb.WriteString("     - If diagnosis is \"Stroke\", show list of extracted complications to patient and recommend hospital visit if \"symptoms\" indicate certain complications among complications extracted from Stroke Complications. Give evidence why \"symptoms\" indicate extracted complication.\n")
	sb.WriteString("     - Else if diagnosis is \"Spinal Cord Injury\", show list of extracted complications to patient and recommend hospital visit if \"symptoms\" indicate certain complications among complications extracted from SCI Complications. Give evidence why \"symptoms\" indicate extracted complication.\n\n")

	sb.WriteString("Input:\n")
	sb.WriteString(fmt.Sprintf("  diagnosed patient: %s\n", answers["diagnosed patient"]))
	sb.WriteString(fmt.Sprintf("  patient's disability: %s\n", answers["patient's disability"]))
	sb.WriteString(fmt.Sprintf("  functional evaluation: %s\n", answers["functional evaluation"]))
	sb.WriteString(fmt.Sprintf("  ITEMs: %s\n", strings.Join(decreased, ", ")))
	if len(noData) > 0 {
		sb.WriteString(fmt.Sprintf("  ITEMs with insufficient history (no recent baseline, do not treat as declined): %s\n", strings.Join(noData, ", ")))
	}
	sb.WriteString(fmt.Sprintf("  newly acquired symptoms: %s\n\n", answers["newly acquired symptoms"]))

	sb.WriteString("CUE T Manual:\n")
	sb.WriteString(contextAnswer(contexts, 0))
	sb.WriteString("\n\nPTX:\n")
	sb.WriteString(contextAnswer(contexts, 1))
	sb.WriteString("\n\nStroke Complications:\n")
	sb.WriteString(contextAnswer(contexts, 2))
	sb.WriteString("\n\nSCI Complications:\n")
	sb.WriteString(contextAnswer(contexts, 3))
	sb.WriteString("\n\n---\n")
	sb.WriteString("Here are the examples of questions and answers between physician and patients.\n---\n")
	sb.WriteString(rehabilitationExampleOutputs)

	return sb.String()
}

const rehabilitationExampleOutputs = `>>Example1<< :

$Input :
    "diagnosed patient": 'Stroke',
    "patient's disability": 'Activities using arm',
    "functional evaluation": 'CUE-T',
    "ITEMs": ['REACH FORWARD'],
    "newly acquired symptoms": 'Pain when moving my weak side shoulders'

$output :
    required test : CUE T Test.
    Extract anatomical structures : shoulder.

    Item of which the score dropped : 'Reach Forward'
    Exercise recommendation :
    1. Position yourself standing against a wall.
    2. Take your arm out of the sling, lean forward and allow the affected arm to passively flex with gravity.
    3. Use your other arm to slowly lift the shoulder into flexion.
    4. Ensure that you do not actively use the affected arm.

    suspected complications: hemiplegic shoulder pain (because symptom is pain on movement (active or passive))
    Visit nearby hospital: Yes

>>Example2<< :

$Input :
    "diagnosed patient": 'Spinal Cord Injury',
    "patient's disability": 'Activities using arm',
    "functional evaluation": 'CUE-T',
    "ITEMs": ['PINCH DIE', 'WRIST UP'],
    "newly acquired symptoms": 'Face looks pale, frequently feel dizzy'

$output :
    required test : CUE T Test.
    Extract anatomical structures : fingers, wrist.

    Item of which the score dropped : 'Pinch Die'
    Exercise recommendation :
    1. Position yourself with your fingers weaved between each other.
    2. Push up with the fingers of your right hand while pushing down with the fingers of your left hand.

    Item of which the score dropped : 'Wrist up'
    Exercise recommendation :
    1. Position yourself sitting with your hand grasping a cup and hanging over the edge of a table.
    2. Practice tilting the cup up by bending your wrist to a point level with, or higher than the table.

    suspected complications: Orthostatic hypotension (because symptoms are pallor and dizziness)
    Visit nearby hospital: Yes
`
