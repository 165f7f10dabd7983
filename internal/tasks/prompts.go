package tasks

import "fmt"

const imageAutoPrompt = `
      Perform a rigorous forensic authentication of this image. Act as a digital forensics expert.

      OBJECTIVE: Detect AI-Generated content (GANs, Diffusion models) AND Human Manipulation (Photoshop, Editing).

      ANALYSIS PROTOCOL:
      1. **AI Generation Indicators:**
         - **Anatomical Consistency:** Check hands (finger count/shape), ears, teeth, and pupils (shape/reflection symmetry).
         - **Texture & Detail:** Look for "painterly" or "waxy" skin textures, undefined hair strands blending into background, or incoherent text/logos.
         - **Background Logic:** Check for nonsensical geometry, furniture blending into walls, or impossible perspectives.

      2. **Manual Manipulation (Photoshop) Indicators:**
         - **Edge Analysis:** Look for jagged edges, halo effects, or pixelation mismatches around subjects (masking artifacts).
         - **Lighting & Shadows:** Verify shadow direction matches light sources. Look for inconsistent shadow fall-off or missing shadows.
         - **Clone/Heal Artifacts:** Identify repeated texture patterns indicative of the clone stamp tool.
         - **Noise/Grain:** Check for smooth areas in a grainy image (blurring/smoothing) or mismatched noise profiles between subject and background.

      OUTPUT FORMAT (Markdown):
      ## Forensic Analysis Report

      **AUTHENTICITY VERDICT:** [Likely Authentic | Suspicious | Highly Edited | AI-Generated]
      **CONFIDENCE SCORE:** [0-100]%

      ### 🚩 Critical Findings
      * List the most significant red flags found.

      ### 🔍 Detailed Inspection
      * **Anatomy/Objects:** [Notes on physical plausibility]
      * **Lighting/Physics:** [Notes on light coherence and reflections]
      * **Digital Artifacts:** [Notes on pixel-level irregularities or AI textures]

      ### 💡 Technical Assessment
      [Explain *why* specific artifacts suggest a specific tool (e.g., "Mismatched noise suggests composite" or "Asymmetrical pupils suggest GAN/Diffusion generation").]
    `

const imageGuidedPrompt = `
      The user acts as the forensic investigator.
      Act as a senior mentor. Do not give the final verdict immediately.
      Instead, guide the user to look at specific parts of THIS image to find the truth themselves.

      Step 1: Ask them to zoom in on specific suspicious areas (hands, eyes, shadows).
      Step 2: Explain *exactly* what to look for (e.g., "Check if the reflection in the left eye matches the right eye" or "Look for blurred pixel edges here").
      Step 3: Point out any "perfect" symmetry or strange artifacts typical of AI.

      Teach them how to spot the difference between a bad camera and a manipulated photo.
    `

const videoPrompt = `
    Perform a forensic video analysis on this clip. Focus on detecting Deepfakes, Face Swaps, and Editing Tampering.

    ANALYSIS PROTOCOL:
    1. **Facial Forensics:**
       - **Landmark Stability:** Do facial features (eyes, nose, mouth) jitter or "slide" when the head turns?
       - **Boundary Blending:** Check the hairline and jawline for blurring or mismatched skin tones (masking artifacts).
       - **Eye Behavior:** Are blink patterns natural? Do reflections in eyes match the scene?
       - **Lip Sync:** Does mouth movement precisely match the phonemes of the audio?

    2. **Frame Integrity:**
       - **Temporal Consistency:** Look for flickering lighting or texture popping between frames.
       - **Motion Artifacts:** Do objects warp or bend unnaturaly during movement?

    3. **Editing Forensics:**
       - **Jump Cuts:** Identify sudden breaks in continuity used to hide context.
       - **Audio-Visual Sync:** Is there a delay or mismatch indicating replaced audio?

    OUTPUT FORMAT (Markdown):
    ## Video Forensic Report

    **RISK LEVEL:** [Low | Medium | High | Critical]
    **MANIPULATION TYPE:** [None Detected | Deepfake/Face Swap | AI Lip Sync | Traditional Editing]

    ### 🚩 Anomalies Detected
    * [Timestamp/Frame description]: [Description of anomaly]

    ### 🔬 Technical Analysis
    * **Facial Consistency:** [Notes on face stability and blending]
    * **Lighting/Physics:** [Notes on temporal lighting consistency]
    * **Sync & Motion:** [Notes on lip-sync and object motion]

    ### 🛡️ Conclusion
    [Final assessment of the clip's legitimacy]
  `

const audioPrompt = `
    Perform a forensic audio analysis.

    Task 1: **Verbatim Transcript**
    Transcribe the audio accurately.

    Task 2: **Forensic Authenticity Check**
    Analyze for signs of Synthetic Voice (AI/TTS) and Audio Splicing.

    ANALYSIS PROTOCOL:
    1. **Synthetic Indicators:**
       - **Prosody & Intonation:** Is the speech rhythm robotic, too perfect, or lacking natural emotional variance?
       - **Breathing:** Are natural breath sounds missing between long phrases?
       - **Artifacts:** Listen for metallic/robotic ringing, clicking, or phase issues often found in vocoders.

    2. **Splicing/Editing Indicators:**
       - **Noise Floor:** Does the background hiss/room tone cut out or change abruptly between words?
       - **Spectral Continuity:** Are there unnatural shifts in pitch or formant frequencies suggestive of copy-pasting words?

    OUTPUT FORMAT (Markdown):
    ## Audio Forensic Report

    **TRANSCRIPT:**
    > "[Transcript here...]"

    **AUTHENTICITY VERDICT:** [Likely Human | Suspected AI/Synthetic | Manipulated/Spliced]

    ### 🚩 Detected Artifacts
    * **Voice Quality:** [Natural vs Metallic/Flat]
    * **Breathing/Pauses:** [Presence of natural breath vs unnatural silence]
    * **Background Ambience:** [Consistent room tone vs gated/spliced silence]

    ### 📉 Technical Observation
    [Detailed explanation of specific auditory clues found]
  `

const identityPromptTemplate = `
    Investigate the following identity or claim using Google Search to detect potential catfishing.
    Query: "%s"

    Cross-reference public information. Look for inconsistencies in timeline, location, or career claims.
    If the person is a public figure or has a digital footprint, summarize key consistency points.
    If there are "red flags" (e.g., stolen photos often associated with this name, or scam reports), highlight them.
  `

const deepReasoningPromptTemplate = `
    You are a lead Digital Forensics Investigator.
    Analyze the following complex catfishing scenario. Connect the dots between behavioral patterns, digital evidence, and psychological manipulation tactics.

    Scenario:
    %s

    Provide a comprehensive risk assessment profile.
  `

const conversationPromptPrefix = `
You are a forensic conversation analyst specializing in detecting online romance scams, catfishing, and manipulation tactics.
Analyze the following conversation and identify manipulation patterns.

DETECTION CATEGORIES:
1. LOVE BOMBING (excessive early affection)
   - "I love you" too soon, overwhelming compliments, claims of instant deep connection.
2. URGENCY/PRESSURE
   - Time-sensitive requests, guilt-tripping, emotional blackmail.
3. ISOLATION TACTICS
   - Discouraging contact with family/friends, secrecy requests.
4. FINANCIAL MANIPULATION
   - Sob stories building toward requests, investment opportunities, requests for gift cards/crypto.
5. INCONSISTENCIES
   - Changing story details, conflicting timelines, excuses for avoiding video calls.
6. SCAM SCRIPTS
   - Military deployment, oil rig, stuck in foreign country, inheritance.

RESPONSE FORMAT (JSON):
{
  "overallRiskScore": <0-100>,
  "riskLevel": "<LOW|MEDIUM|HIGH|CRITICAL>",
  "summary": "<2-3 sentence overall assessment>",
  "patterns": [
    {
      "type": "<LOVE_BOMBING|URGENCY|ISOLATION|FINANCIAL|INCONSISTENCY|SCRIPT|OTHER>",
      "severity": "<LOW|MEDIUM|HIGH>",
      "evidence": ["<exact quotes or paraphrased examples>"],
      "explanation": "<why this is concerning>"
    }
  ],
  "timeline": [
    {
      "approximate": "<Day 1, Week 2, etc.>",
      "event": "<what happened>",
      "concern": <true if red flag, false otherwise>
    }
  ],
  "redFlags": ["<list of specific warning signs found>"],
  "recommendations": ["<actionable advice for the user>"]
}

If the conversation appears genuine with no manipulation:
- Set overallRiskScore low (0-20)
- Still note any minor concerns or positive observations.

CONVERSATION TO ANALYZE:
`

const ocrPrompt = "Extract all text from this chat/message screenshot. Preserve the conversation structure showing who said what. Format as a readable conversation transcript. Ignore UI elements like battery level or signal strength unless relevant."

// IdentityPrompt embeds the query into the identity investigation prompt.
func IdentityPrompt(query string) string {
	return fmt.Sprintf(identityPromptTemplate, query)
}

// DeepReasoningPrompt embeds the scenario into the deep analysis prompt.
func DeepReasoningPrompt(scenario string) string {
	return fmt.Sprintf(deepReasoningPromptTemplate, scenario)
}

// ConversationPrompt builds the full conversation-analysis prompt. Context
// supplied by the user, if any, precedes the transcript.
func ConversationPrompt(text, context string) string {
	p := conversationPromptPrefix
	if context != "" {
		p += "\nCONTEXT FROM USER: " + context + "\n\n"
	}
	return p + text
}
